package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles admin user database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new admin repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetByEmail returns an admin by email, or nil if missing
func (r *Repository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	query := `SELECT * FROM admin_users WHERE email = $1`
	var a AdminUser
	err := r.db.GetContext(ctx, &a, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &a, err
}

// GetByID returns an admin by id, or nil if missing
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	query := `SELECT * FROM admin_users WHERE id = $1`
	var a AdminUser
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &a, err
}

// TouchLastLogin records a successful login
func (r *Repository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE admin_users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
