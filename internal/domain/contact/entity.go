package contact

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status of a contact request as the admin works through it
type Status string

const (
	StatusNew       Status = "new"
	StatusRead      Status = "read"
	StatusResponded Status = "responded"
)

// Request represents an inquiry sent through the contact form
type Request struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Subject   sql.NullString `db:"subject"`
	Message   string         `db:"message"`
	Status    Status         `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// RequestResponse for API responses
type RequestResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts entity to response
func (r *Request) ToResponse() *RequestResponse {
	resp := &RequestResponse{
		ID:        r.ID.String(),
		Name:      r.Name,
		Email:     r.Email,
		Message:   r.Message,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.Phone.Valid {
		resp.Phone = r.Phone.String
	}
	if r.Subject.Valid {
		resp.Subject = r.Subject.String
	}
	return resp
}

// CreateRequest is the public contact form payload
type CreateRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Subject string `json:"subject,omitempty" validate:"omitempty,max=255"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// UpdateStatusRequest for admin status changes
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read responded"`
}
