package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	"github.com/learnsphere/learnsphere-api/internal/domain/repository"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (title, description, video_url, price, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Description, c.VideoURL, c.Price, c.ImageURL)

	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	c := &entity.Course{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, video_url, price, image_url, created_at, updated_at
		FROM courses
		WHERE id = $1
	`, id)

	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.VideoURL, &c.Price,
		&c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]*entity.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, video_url, price, image_url, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanCourses(rows pgx.Rows) ([]*entity.Course, error) {
	var out []*entity.Course
	for rows.Next() {
		c := &entity.Course{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.VideoURL, &c.Price,
			&c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
