package contact

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound when a contact request does not exist
var ErrNotFound = errors.New("contact request not found")

// Repository handles contact request database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new contact repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a contact request
func (r *Repository) Create(ctx context.Context, req *Request) error {
	query := `
		INSERT INTO contact_requests (id, name, email, phone, subject, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.Name,
		req.Email,
		req.Phone,
		req.Subject,
		req.Message,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

// List returns contact requests newest first, optionally by status
func (r *Repository) List(ctx context.Context, status Status) ([]Request, error) {
	var out []Request
	if status != "" {
		query := `SELECT * FROM contact_requests WHERE status = $1 ORDER BY created_at DESC`
		err := r.db.SelectContext(ctx, &out, query, status)
		return out, err
	}
	query := `SELECT * FROM contact_requests ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &out, query)
	return out, err
}

// GetByID returns a contact request, or nil if missing
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	var req Request
	err := r.db.GetContext(ctx, &req, `SELECT * FROM contact_requests WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &req, err
}

// SetStatus moves a contact request through the triage states
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE contact_requests SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return err
}
