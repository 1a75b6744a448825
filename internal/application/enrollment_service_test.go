package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
)

type memCourseRepo struct {
	mu     sync.Mutex
	byID   map[string]*entity.Course
	nextID int
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{byID: map[string]*entity.Course{}}
}

func (r *memCourseRepo) Create(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = fmt.Sprintf("c-%d", r.nextID)
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCourseRepo) List(_ context.Context) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Course, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCourseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var _ repo.CourseRepository = (*memCourseRepo)(nil)

// memEnrollmentRepo keys on (user, course) like the unique constraint does.
type memEnrollmentRepo struct {
	mu      sync.Mutex
	pairs   map[string]bool
	courses *memCourseRepo
}

func newMemEnrollmentRepo(courses *memCourseRepo) *memEnrollmentRepo {
	return &memEnrollmentRepo{pairs: map[string]bool{}, courses: courses}
}

func pairKey(userID, courseID string) string { return userID + "/" + courseID }

func (r *memEnrollmentRepo) Create(_ context.Context, e *entity.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey(e.UserID, e.CourseID)
	if r.pairs[k] {
		return repo.ErrAlreadyExists
	}
	r.pairs[k] = true
	e.ID = k
	return nil
}

func (r *memEnrollmentRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Course
	for k := range r.pairs {
		if len(k) > len(userID) && k[:len(userID)+1] == userID+"/" {
			c, err := r.courses.GetByID(ctx, k[len(userID)+1:])
			if err == nil {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

var _ repo.EnrollmentRepository = (*memEnrollmentRepo)(nil)

func TestEnroll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	courses := newMemCourseRepo()
	course := &entity.Course{Title: "Go Fundamentals", Price: 49.99}
	require.NoError(t, courses.Create(ctx, course))

	svc := NewEnrollmentService(newMemEnrollmentRepo(courses), courses)

	e, err := svc.Enroll(ctx, "u-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, "u-1", e.UserID)
	assert.Equal(t, course.ID, e.CourseID)

	_, err = svc.Enroll(ctx, "u-1", course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	mine, err := svc.MyCourses(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Go Fundamentals", mine[0].Title)
}

func TestEnroll_UnknownCourse(t *testing.T) {
	t.Parallel()

	courses := newMemCourseRepo()
	svc := NewEnrollmentService(newMemEnrollmentRepo(courses), courses)

	_, err := svc.Enroll(context.Background(), "u-1", "c-missing")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
