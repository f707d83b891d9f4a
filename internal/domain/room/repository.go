package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository handles room database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new room repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns all active rooms, newest first
func (r *Repository) ListActive(ctx context.Context) ([]Room, error) {
	query := `SELECT * FROM rooms WHERE is_active = true ORDER BY created_at DESC`
	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	return rooms, err
}

// ListAll returns every room including inactive ones, newest first
func (r *Repository) ListAll(ctx context.Context) ([]Room, error) {
	query := `SELECT * FROM rooms ORDER BY created_at DESC`
	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	return rooms, err
}

// GetByID returns a room by ID, or nil if missing
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `SELECT * FROM rooms WHERE id = $1`
	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &room, err
}

// GetActiveByID returns an active room by ID, or nil if missing or inactive
func (r *Repository) GetActiveByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `SELECT * FROM rooms WHERE id = $1 AND is_active = true`
	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &room, err
}

// GetActiveBySlug returns an active room by slug, or nil if missing
func (r *Repository) GetActiveBySlug(ctx context.Context, slug string) (*Room, error) {
	query := `SELECT * FROM rooms WHERE slug = $1 AND is_active = true`
	var room Room
	err := r.db.GetContext(ctx, &room, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &room, err
}

// Create inserts a new room
func (r *Repository) Create(ctx context.Context, room *Room) error {
	query := `
		INSERT INTO rooms (id, name, slug, description, base_price, max_guests, features, images, is_active, min_nights, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Slug,
		room.Description,
		room.BasePrice,
		room.MaxGuests,
		room.Features,
		room.Images,
		room.IsActive,
		room.MinNights,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

// Update rewrites a room row
func (r *Repository) Update(ctx context.Context, room *Room) error {
	query := `
		UPDATE rooms
		SET name = $2, slug = $3, description = $4, base_price = $5, max_guests = $6,
		    features = $7, images = $8, is_active = $9, min_nights = $10, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Slug,
		room.Description,
		room.BasePrice,
		room.MaxGuests,
		room.Features,
		room.Images,
		room.IsActive,
		room.MinNights,
	)
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return err
}

// Delete removes a room. Rooms referenced by bookings fail with
// ErrHasBookings; deactivate those instead.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rooms WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return ErrHasBookings
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
