package admin

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// AdminUser represents a site administrator
type AdminUser struct {
	ID           uuid.UUID    `db:"id"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	Name         string       `db:"name"`
	IsActive     bool         `db:"is_active"`
	LastLoginAt  sql.NullTime `db:"last_login_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// AdminResponse for API responses
type AdminResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	LastLoginAt string `json:"last_login_at,omitempty"`
}

// ToResponse converts entity to response
func (a *AdminUser) ToResponse() *AdminResponse {
	resp := &AdminResponse{
		ID:    a.ID.String(),
		Email: a.Email,
		Name:  a.Name,
	}
	if a.LastLoginAt.Valid {
		resp.LastLoginAt = a.LastLoginAt.Time.Format(time.RFC3339)
	}
	return resp
}

// LoginRequest for admin authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
