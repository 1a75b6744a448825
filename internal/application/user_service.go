package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
)

// UserService implements the admin user CRUD and the owner-or-admin profile
// operations. Authorization is decided in middleware; this layer assumes the
// caller was already allowed through.
type UserService struct {
	Users      repo.UserRepository
	GCS        *storage.Client
	GCSBucket  string
	Logger     *logrus.Logger
	BcryptCost int
}

func NewUserService(users repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, bcryptCost int) *UserService {
	return &UserService{Users: users, GCS: gcs, GCSBucket: gcsBucket, Logger: logger, BcryptCost: bcryptCost}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// Create adds a user on behalf of an admin.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, ErrInvalidRole
	}
	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Users.List(ctx)
}

type UpdateUserInput struct {
	Name  string
	Phone string
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.Users.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// UploadProfileImage stores a profile picture in GCS and returns its public URL.
func (s *UserService) UploadProfileImage(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", userID, uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}
