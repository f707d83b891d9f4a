package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/villamosta/villa-api/internal/pkg/stay"
)

// PaymentStatus represents the payment lifecycle of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Status represents the booking lifecycle
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Booking represents a guest reservation. The stay occupies the half-open
// range [CheckIn, CheckOut). TotalPrice is snapshotted at creation time and
// never recomputed from later room edits.
type Booking struct {
	ID              uuid.UUID      `db:"id"`
	RoomID          uuid.UUID      `db:"room_id"`
	GuestName       string         `db:"guest_name"`
	GuestEmail      string         `db:"guest_email"`
	GuestPhone      sql.NullString `db:"guest_phone"`
	CheckIn         time.Time      `db:"check_in"`
	CheckOut        time.Time      `db:"check_out"`
	NumGuests       int            `db:"num_guests"`
	TotalPrice      float64        `db:"total_price"`
	PaymentStatus   PaymentStatus  `db:"payment_status"`
	PaymentIntentID sql.NullString `db:"payment_intent_id"`
	Status          Status         `db:"booking_status"`
	SpecialRequests sql.NullString `db:"special_requests"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`

	// Joined room fields for admin listings
	RoomName sql.NullString `db:"room_name"`
	RoomSlug sql.NullString `db:"room_slug"`
}

// BookingResponse for API responses
type BookingResponse struct {
	ID              string  `json:"id"`
	RoomID          string  `json:"room_id"`
	RoomName        string  `json:"room_name,omitempty"`
	RoomSlug        string  `json:"room_slug,omitempty"`
	GuestName       string  `json:"guest_name"`
	GuestEmail      string  `json:"guest_email"`
	GuestPhone      string  `json:"guest_phone,omitempty"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	NumGuests       int     `json:"num_guests"`
	TotalPrice      float64 `json:"total_price"`
	PaymentStatus   string  `json:"payment_status"`
	BookingStatus   string  `json:"booking_status"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ToResponse converts entity to response
func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID.String(),
		RoomID:        b.RoomID.String(),
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		CheckIn:       stay.FormatDate(b.CheckIn),
		CheckOut:      stay.FormatDate(b.CheckOut),
		NumGuests:     b.NumGuests,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: string(b.PaymentStatus),
		BookingStatus: string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
	if b.GuestPhone.Valid {
		resp.GuestPhone = b.GuestPhone.String
	}
	if b.SpecialRequests.Valid {
		resp.SpecialRequests = b.SpecialRequests.String
	}
	if b.RoomName.Valid {
		resp.RoomName = b.RoomName.String
	}
	if b.RoomSlug.Valid {
		resp.RoomSlug = b.RoomSlug.String
	}
	return resp
}

// DateRange is an occupied interval returned by overlap queries
type DateRange struct {
	Start time.Time `db:"range_start"`
	End   time.Time `db:"range_end"`
}

// String renders a range in the human-readable "start to end" form used by
// availability responses
func (d DateRange) String() string {
	return stay.FormatDate(d.Start) + " to " + stay.FormatDate(d.End)
}

// BlockedDate represents a manual hold on a room (maintenance, owner use).
// Unlike bookings, blocked ranges are stored as closed intervals: both
// StartDate and EndDate are held.
type BlockedDate struct {
	ID        uuid.UUID      `db:"id"`
	RoomID    uuid.UUID      `db:"room_id"`
	StartDate time.Time      `db:"start_date"`
	EndDate   time.Time      `db:"end_date"`
	Reason    sql.NullString `db:"reason"`
	CreatedAt time.Time      `db:"created_at"`
}

// BlockedDateResponse for API responses
type BlockedDateResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts entity to response
func (b *BlockedDate) ToResponse() *BlockedDateResponse {
	resp := &BlockedDateResponse{
		ID:        b.ID.String(),
		RoomID:    b.RoomID.String(),
		StartDate: stay.FormatDate(b.StartDate),
		EndDate:   stay.FormatDate(b.EndDate),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
	if b.Reason.Valid {
		resp.Reason = b.Reason.String
	}
	return resp
}
