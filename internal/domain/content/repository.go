package content

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound when a content block or FAQ does not exist
var ErrNotFound = errors.New("content not found")

// Repository handles site content database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new content repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// PageSections returns the active content blocks of a page in display order
func (r *Repository) PageSections(ctx context.Context, page string) ([]Section, error) {
	query := `
		SELECT * FROM site_content
		WHERE page = $1 AND is_active = true
		ORDER BY order_index
	`
	var sections []Section
	err := r.db.SelectContext(ctx, &sections, query, page)
	return sections, err
}

// ListSections returns every content block including inactive ones
func (r *Repository) ListSections(ctx context.Context) ([]Section, error) {
	query := `SELECT * FROM site_content ORDER BY page, order_index`
	var sections []Section
	err := r.db.SelectContext(ctx, &sections, query)
	return sections, err
}

// UpsertSection writes a content block, inserting or overwriting by
// (page, section)
func (r *Repository) UpsertSection(ctx context.Context, s *Section) error {
	query := `
		INSERT INTO site_content (id, page, section, content, order_index, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (page, section) DO UPDATE
		SET content = EXCLUDED.content,
		    order_index = EXCLUDED.order_index,
		    is_active = EXCLUDED.is_active,
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Page,
		s.Section,
		s.Content,
		s.OrderIndex,
		s.IsActive,
	)
	return err
}

// DeleteSection removes a content block
func (r *Repository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM site_content WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return err
}

// ListActiveFAQs returns published FAQs in display order
func (r *Repository) ListActiveFAQs(ctx context.Context) ([]FAQ, error) {
	query := `SELECT * FROM faqs WHERE is_active = true ORDER BY order_index`
	var faqs []FAQ
	err := r.db.SelectContext(ctx, &faqs, query)
	return faqs, err
}

// ListAllFAQs returns every FAQ including unpublished ones
func (r *Repository) ListAllFAQs(ctx context.Context) ([]FAQ, error) {
	query := `SELECT * FROM faqs ORDER BY order_index`
	var faqs []FAQ
	err := r.db.SelectContext(ctx, &faqs, query)
	return faqs, err
}

// GetFAQ returns a FAQ, or nil if missing
func (r *Repository) GetFAQ(ctx context.Context, id uuid.UUID) (*FAQ, error) {
	var f FAQ
	err := r.db.GetContext(ctx, &f, `SELECT * FROM faqs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &f, err
}

// CreateFAQ inserts a FAQ
func (r *Repository) CreateFAQ(ctx context.Context, f *FAQ) error {
	query := `
		INSERT INTO faqs (id, question, answer, category, order_index, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.Question,
		f.Answer,
		f.Category,
		f.OrderIndex,
		f.IsActive,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

// UpdateFAQ rewrites a FAQ row
func (r *Repository) UpdateFAQ(ctx context.Context, f *FAQ) error {
	query := `
		UPDATE faqs
		SET question = $2, answer = $3, category = $4, order_index = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.Question,
		f.Answer,
		f.Category,
		f.OrderIndex,
		f.IsActive,
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

// DeleteFAQ removes a FAQ
func (r *Repository) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return err
}
