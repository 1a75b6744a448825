package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	"github.com/learnsphere/learnsphere-api/internal/domain/repository"
)

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *entity.Enrollment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO enrollments (user_id, course_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, e.UserID, e.CourseID)

	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.title, c.description, c.video_url, c.price, c.image_url, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
