package application

import (
	"context"
	"errors"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
)

var (
	ErrAlreadyWishlisted = errors.New("course already in wishlist")
	ErrNotWishlisted     = errors.New("course not in wishlist")
)

// WishlistService manages the per-user wishlist.
type WishlistService struct {
	Wishlist repo.WishlistRepository
	Courses  repo.CourseRepository
}

func NewWishlistService(wishlist repo.WishlistRepository, courses repo.CourseRepository) *WishlistService {
	return &WishlistService{Wishlist: wishlist, Courses: courses}
}

func (s *WishlistService) Add(ctx context.Context, userID, courseID string) error {
	if _, err := s.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	if err := s.Wishlist.Add(ctx, userID, courseID); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return ErrAlreadyWishlisted
		}
		return err
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, courseID string) error {
	if err := s.Wishlist.Remove(ctx, userID, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotWishlisted
		}
		return err
	}
	return nil
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]*entity.Course, error) {
	return s.Wishlist.ListByUser(ctx, userID)
}
