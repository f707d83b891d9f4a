package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Room represents a bookable room of the villa
type Room struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description string         `db:"description"`
	BasePrice   float64        `db:"base_price"`
	MaxGuests   int            `db:"max_guests"`
	Features    pq.StringArray `db:"features"`
	Images      pq.StringArray `db:"images"`
	IsActive    bool           `db:"is_active"`
	MinNights   int            `db:"min_nights"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// RoomResponse for API responses
type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"base_price"`
	MaxGuests   int      `json:"max_guests"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`
	IsActive    bool     `json:"is_active"`
	MinNights   int      `json:"min_nights"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ToResponse converts entity to response
func (r *Room) ToResponse() *RoomResponse {
	return &RoomResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		MaxGuests:   r.MaxGuests,
		Features:    r.Features,
		Images:      r.Images,
		IsActive:    r.IsActive,
		MinNights:   r.MinNights,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateRequest for creating a room
type CreateRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"required"`
	BasePrice   float64  `json:"base_price" validate:"required,gt=0"`
	MaxGuests   int      `json:"max_guests" validate:"omitempty,gte=1,lte=20"`
	Features    []string `json:"features,omitempty"`
	Images      []string `json:"images,omitempty"`
	MinNights   int      `json:"min_nights" validate:"omitempty,gte=1"`
}

// UpdateRequest for partially updating a room. Nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string   `json:"description,omitempty"`
	BasePrice   *float64  `json:"base_price,omitempty" validate:"omitempty,gt=0"`
	MaxGuests   *int      `json:"max_guests,omitempty" validate:"omitempty,gte=1,lte=20"`
	Features    *[]string `json:"features,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	MinNights   *int      `json:"min_nights,omitempty" validate:"omitempty,gte=1"`
}
