package settings

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles site settings database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new settings repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value for a key; found is false when the key is unset
func (r *Repository) Get(ctx context.Context, key string) (value string, found bool, err error) {
	query := `SELECT value FROM site_settings WHERE key = $1`
	err = r.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// List returns all settings ordered by key
func (r *Repository) List(ctx context.Context) ([]Setting, error) {
	query := `SELECT * FROM site_settings ORDER BY key`
	var out []Setting
	err := r.db.SelectContext(ctx, &out, query)
	return out, err
}

// Upsert writes a setting, inserting or overwriting by key
func (r *Repository) Upsert(ctx context.Context, key, value, description string) error {
	query := `
		INSERT INTO site_settings (id, key, value, description, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW(), NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    description = COALESCE(EXCLUDED.description, site_settings.description),
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), key, value, description)
	return err
}

// BookingFee reads the flat booking fee, defaulting to 0 when the key is
// unset or unparseable
func (r *Repository) BookingFee(ctx context.Context) (float64, error) {
	raw, found, err := r.Get(ctx, BookingFeeKey)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	fee, parseErr := strconv.ParseFloat(raw, 64)
	if parseErr != nil {
		return 0, nil
	}
	return fee, nil
}
