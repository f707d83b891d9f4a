package booking

import (
	"time"

	"github.com/google/uuid"
)

// Availability is the result of an availability check. The JSON field names
// follow the public booking-widget contract.
type Availability struct {
	IsAvailable   bool     `json:"isAvailable"`
	PricePerNight float64  `json:"pricePerNight"`
	TotalNights   int      `json:"totalNights"`
	TotalPrice    float64  `json:"totalPrice"`
	BookingFee    float64  `json:"bookingFee"`
	MinNights     int      `json:"minNights"`
	BlockedDates  []string `json:"blockedDates"`
	Reason        string   `json:"reason,omitempty"`
}

// CreateRequest is the wire form of a booking creation request
type CreateRequest struct {
	RoomID          string `json:"roomId" validate:"required,uuid"`
	CheckIn         string `json:"checkIn" validate:"required,calendar_date"`
	CheckOut        string `json:"checkOut" validate:"required,calendar_date"`
	GuestName       string `json:"guestName" validate:"required,min=2,max=255"`
	GuestEmail      string `json:"guestEmail" validate:"required,email"`
	GuestPhone      string `json:"guestPhone,omitempty" validate:"omitempty,min=5,max=30"`
	NumGuests       int    `json:"numGuests" validate:"required,gte=1"`
	SpecialRequests string `json:"specialRequests,omitempty" validate:"omitempty,max=2000"`
}

// CreateInput is the parsed booking creation request the service consumes
type CreateInput struct {
	RoomID          uuid.UUID
	CheckIn         time.Time
	CheckOut        time.Time
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	NumGuests       int
	SpecialRequests string
}

// CreateResponse carries the persisted booking plus the client secret the
// frontend needs to collect payment
type CreateResponse struct {
	Booking      *BookingResponse `json:"booking"`
	ClientSecret string           `json:"clientSecret"`
}

// AdminUpdateRequest for admin edits of a booking. Nil fields are unchanged.
type AdminUpdateRequest struct {
	BookingStatus   *string `json:"booking_status,omitempty" validate:"omitempty,booking_status"`
	PaymentStatus   *string `json:"payment_status,omitempty" validate:"omitempty,payment_status"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=2000"`
}

// AdminListFilter narrows the admin booking listing
type AdminListFilter struct {
	Status    string
	RoomID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// AdminStats summarises a booking listing
type AdminStats struct {
	Total        int     `json:"total"`
	Confirmed    int     `json:"confirmed"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// AdminListResponse pairs the admin booking listing with its summary
type AdminListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Stats    AdminStats         `json:"stats"`
}

// CreateBlockRequest for blocking a date range
type CreateBlockRequest struct {
	RoomID    string `json:"room_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,calendar_date"`
	EndDate   string `json:"end_date" validate:"required,calendar_date"`
	Reason    string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
