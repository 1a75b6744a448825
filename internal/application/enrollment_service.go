package application

import (
	"context"
	"errors"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
)

var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

// EnrollmentService signs users up for courses.
type EnrollmentService struct {
	Enrollments repo.EnrollmentRepository
	Courses     repo.CourseRepository
}

func NewEnrollmentService(enrollments repo.EnrollmentRepository, courses repo.CourseRepository) *EnrollmentService {
	return &EnrollmentService{Enrollments: enrollments, Courses: courses}
}

// Enroll records the enrollment after checking the course exists. The unique
// constraint on (user_id, course_id) guards against double enrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*entity.Enrollment, error) {
	if _, err := s.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	e := &entity.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.Enrollments.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return e, nil
}

// MyCourses lists courses the user is enrolled in.
func (s *EnrollmentService) MyCourses(ctx context.Context, userID string) ([]*entity.Course, error) {
	return s.Enrollments.ListByUser(ctx, userID)
}
