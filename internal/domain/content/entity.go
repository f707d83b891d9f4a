package content

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Section represents an editable content block on a site page. Content is
// free-form JSON whose shape the frontend owns.
type Section struct {
	ID         uuid.UUID       `db:"id"`
	Page       string          `db:"page"`
	Section    string          `db:"section"`
	Content    json.RawMessage `db:"content"`
	OrderIndex int             `db:"order_index"`
	IsActive   bool            `db:"is_active"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// SectionResponse for API responses
type SectionResponse struct {
	ID         string          `json:"id"`
	Page       string          `json:"page"`
	Section    string          `json:"section"`
	Content    json.RawMessage `json:"content"`
	OrderIndex int             `json:"order_index"`
	IsActive   bool            `json:"is_active"`
	UpdatedAt  string          `json:"updated_at"`
}

// ToResponse converts entity to response
func (s *Section) ToResponse() *SectionResponse {
	return &SectionResponse{
		ID:         s.ID.String(),
		Page:       s.Page,
		Section:    s.Section,
		Content:    s.Content,
		OrderIndex: s.OrderIndex,
		IsActive:   s.IsActive,
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

// UpsertSectionRequest writes a content block, keyed by page and section
type UpsertSectionRequest struct {
	Page       string          `json:"page" validate:"required,max=100"`
	Section    string          `json:"section" validate:"required,max=100"`
	Content    json.RawMessage `json:"content" validate:"required"`
	OrderIndex int             `json:"order_index" validate:"gte=0"`
	IsActive   *bool           `json:"is_active,omitempty"`
}

// FAQ represents a frequently asked question
type FAQ struct {
	ID         uuid.UUID `db:"id"`
	Question   string    `db:"question"`
	Answer     string    `db:"answer"`
	Category   string    `db:"category"`
	OrderIndex int       `db:"order_index"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// FAQResponse for API responses
type FAQResponse struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category,omitempty"`
	OrderIndex int    `json:"order_index"`
	IsActive   bool   `json:"is_active"`
}

// ToResponse converts entity to response
func (f *FAQ) ToResponse() *FAQResponse {
	return &FAQResponse{
		ID:         f.ID.String(),
		Question:   f.Question,
		Answer:     f.Answer,
		Category:   f.Category,
		OrderIndex: f.OrderIndex,
		IsActive:   f.IsActive,
	}
}

// CreateFAQRequest for admin FAQ creation
type CreateFAQRequest struct {
	Question   string `json:"question" validate:"required,max=500"`
	Answer     string `json:"answer" validate:"required,max=5000"`
	Category   string `json:"category,omitempty" validate:"omitempty,max=100"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// UpdateFAQRequest for admin FAQ edits. Nil fields are unchanged.
type UpdateFAQRequest struct {
	Question   *string `json:"question,omitempty" validate:"omitempty,max=500"`
	Answer     *string `json:"answer,omitempty" validate:"omitempty,max=5000"`
	Category   *string `json:"category,omitempty" validate:"omitempty,max=100"`
	OrderIndex *int    `json:"order_index,omitempty" validate:"omitempty,gte=0"`
	IsActive   *bool   `json:"is_active,omitempty"`
}
