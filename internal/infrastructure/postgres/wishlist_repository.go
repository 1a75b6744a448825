package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	"github.com/learnsphere/learnsphere-api/internal/domain/repository"
)

type WishlistRepository struct {
	pool *pgxpool.Pool
}

func NewWishlistRepository(pool *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

func (r *WishlistRepository) Add(ctx context.Context, userID, courseID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, course_id)
		VALUES ($1, $2)
	`, userID, courseID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, courseID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND course_id = $2
	`, userID, courseID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.title, c.description, c.video_url, c.price, c.image_url, c.created_at, c.updated_at
		FROM wishlist_items w
		JOIN courses c ON c.id = w.course_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

var _ repository.WishlistRepository = (*WishlistRepository)(nil)
