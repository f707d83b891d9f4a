package settings

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// BookingFeeKey is the settings key the booking flow reads its flat fee from
const BookingFeeKey = "booking_fee"

// Setting represents a site configuration key/value pair
type Setting struct {
	ID          uuid.UUID      `db:"id"`
	Key         string         `db:"key"`
	Value       string         `db:"value"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// SettingResponse for API responses
type SettingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}

// ToResponse converts entity to response
func (s *Setting) ToResponse() *SettingResponse {
	resp := &SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Description.Valid {
		resp.Description = s.Description.String
	}
	return resp
}

// UpsertRequest for setting a value
type UpsertRequest struct {
	Key         string `json:"key" validate:"required,min=1,max=100"`
	Value       string `json:"value" validate:"required"`
	Description string `json:"description,omitempty"`
}
