package repository

import (
	"context"
	"errors"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
)

// Sentinel errors returned by repository implementations. Services match on
// these with errors.Is and translate them to their own error vocabulary;
// they must never leak driver errors upward.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrAlreadyExists  = errors.New("already exists")
)

// UserRepository is the credential store: it owns user records and enforces
// email uniqueness at the storage layer (unique index), so concurrent
// registrations with the same email can never both succeed.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail returns the user including the password hash; it is the
	// only read path that exposes the hash, and only for verification.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}

// CourseRepository persists courses.
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context) ([]*entity.Course, error)
	Delete(ctx context.Context, id string) error
}

// EnrollmentRepository persists student enrollments. Create returns
// ErrAlreadyExists when the user is already enrolled in the course.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *entity.Enrollment) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Course, error)
}

// WishlistRepository persists per-user wishlists.
type WishlistRepository interface {
	Add(ctx context.Context, userID, courseID string) error
	Remove(ctx context.Context, userID, courseID string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Course, error)
}
