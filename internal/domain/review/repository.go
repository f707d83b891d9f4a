package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound when a review does not exist
var ErrNotFound = errors.New("review not found")

// Repository handles review database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new review repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns published reviews, featured first then newest
func (r *Repository) ListActive(ctx context.Context, featuredOnly bool) ([]Review, error) {
	query := `SELECT * FROM reviews WHERE is_active = true`
	if featuredOnly {
		query += ` AND is_featured = true`
	}
	query += ` ORDER BY is_featured DESC, review_date DESC`

	var reviews []Review
	err := r.db.SelectContext(ctx, &reviews, query)
	return reviews, err
}

// ListAll returns every review including unpublished ones
func (r *Repository) ListAll(ctx context.Context) ([]Review, error) {
	query := `SELECT * FROM reviews ORDER BY review_date DESC`
	var reviews []Review
	err := r.db.SelectContext(ctx, &reviews, query)
	return reviews, err
}

// GetByID returns a review, or nil if missing
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	query := `SELECT * FROM reviews WHERE id = $1`
	var rv Review
	err := r.db.GetContext(ctx, &rv, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &rv, err
}

// Create inserts a review
func (r *Repository) Create(ctx context.Context, rv *Review) error {
	query := `
		INSERT INTO reviews (
			id, guest_name, country, source, rating, score, review_text, review_date,
			stay_type, room_type, is_verified, is_featured, is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		rv.ID,
		rv.GuestName,
		rv.Country,
		rv.Source,
		rv.Rating,
		rv.Score,
		rv.ReviewText,
		rv.ReviewDate,
		rv.StayType,
		rv.RoomType,
		rv.IsVerified,
		rv.IsFeatured,
		rv.IsActive,
		rv.CreatedAt,
		rv.UpdatedAt,
	)
	return err
}

// Update rewrites a review row
func (r *Repository) Update(ctx context.Context, rv *Review) error {
	query := `
		UPDATE reviews
		SET guest_name = $2, country = $3, rating = $4, score = $5, review_text = $6,
		    stay_type = $7, room_type = $8, is_verified = $9, is_featured = $10,
		    is_active = $11, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		rv.ID,
		rv.GuestName,
		rv.Country,
		rv.Rating,
		rv.Score,
		rv.ReviewText,
		rv.StayType,
		rv.RoomType,
		rv.IsVerified,
		rv.IsFeatured,
		rv.IsActive,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return err
}

// Delete removes a review
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return err
}
