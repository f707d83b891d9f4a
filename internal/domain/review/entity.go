package review

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/villamosta/villa-api/internal/pkg/stay"
)

// Review represents a guest review, either left on the site or imported
// from an external portal
type Review struct {
	ID         uuid.UUID       `db:"id"`
	GuestName  string          `db:"guest_name"`
	Country    sql.NullString  `db:"country"`
	Source     string          `db:"source"`
	Rating     int             `db:"rating"`
	Score      sql.NullFloat64 `db:"score"`
	ReviewText string          `db:"review_text"`
	ReviewDate time.Time       `db:"review_date"`
	StayType   sql.NullString  `db:"stay_type"`
	RoomType   sql.NullString  `db:"room_type"`
	IsVerified bool            `db:"is_verified"`
	IsFeatured bool            `db:"is_featured"`
	IsActive   bool            `db:"is_active"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// ReviewResponse for API responses
type ReviewResponse struct {
	ID         string   `json:"id"`
	GuestName  string   `json:"guest_name"`
	Country    string   `json:"country,omitempty"`
	Source     string   `json:"source"`
	Rating     int      `json:"rating"`
	Score      *float64 `json:"score,omitempty"`
	ReviewText string   `json:"review_text"`
	ReviewDate string   `json:"review_date"`
	StayType   string   `json:"stay_type,omitempty"`
	RoomType   string   `json:"room_type,omitempty"`
	IsVerified bool     `json:"is_verified"`
	IsFeatured bool     `json:"is_featured"`
	IsActive   bool     `json:"is_active"`
	CreatedAt  string   `json:"created_at"`
}

// ToResponse converts entity to response
func (r *Review) ToResponse() *ReviewResponse {
	resp := &ReviewResponse{
		ID:         r.ID.String(),
		GuestName:  r.GuestName,
		Source:     r.Source,
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		ReviewDate: stay.FormatDate(r.ReviewDate),
		IsVerified: r.IsVerified,
		IsFeatured: r.IsFeatured,
		IsActive:   r.IsActive,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
	if r.Country.Valid {
		resp.Country = r.Country.String
	}
	if r.Score.Valid {
		score := r.Score.Float64
		resp.Score = &score
	}
	if r.StayType.Valid {
		resp.StayType = r.StayType.String
	}
	if r.RoomType.Valid {
		resp.RoomType = r.RoomType.String
	}
	return resp
}

// CreateRequest for admin review creation
type CreateRequest struct {
	GuestName  string   `json:"guest_name" validate:"required,min=2,max=255"`
	Country    string   `json:"country,omitempty" validate:"omitempty,max=100"`
	Source     string   `json:"source,omitempty" validate:"omitempty,max=50"`
	Rating     int      `json:"rating" validate:"required,gte=1,lte=5"`
	Score      *float64 `json:"score,omitempty" validate:"omitempty,gte=0,lte=10"`
	ReviewText string   `json:"review_text" validate:"required,max=5000"`
	ReviewDate string   `json:"review_date" validate:"required,calendar_date"`
	StayType   string   `json:"stay_type,omitempty" validate:"omitempty,max=100"`
	RoomType   string   `json:"room_type,omitempty" validate:"omitempty,max=100"`
	IsVerified bool     `json:"is_verified"`
	IsFeatured bool     `json:"is_featured"`
}

// UpdateRequest for admin review edits. Nil fields are unchanged.
type UpdateRequest struct {
	GuestName  *string  `json:"guest_name,omitempty" validate:"omitempty,min=2,max=255"`
	Country    *string  `json:"country,omitempty" validate:"omitempty,max=100"`
	Rating     *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Score      *float64 `json:"score,omitempty" validate:"omitempty,gte=0,lte=10"`
	ReviewText *string  `json:"review_text,omitempty" validate:"omitempty,max=5000"`
	StayType   *string  `json:"stay_type,omitempty" validate:"omitempty,max=100"`
	RoomType   *string  `json:"room_type,omitempty" validate:"omitempty,max=100"`
	IsVerified *bool    `json:"is_verified,omitempty"`
	IsFeatured *bool    `json:"is_featured,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
}
