package booking

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrCheckInPast      = errors.New("check-in date cannot be in the past")
	ErrDatesUnavailable = errors.New("selected dates are no longer available")
)

// GuestLimitError reports a guest count above the room's capacity
type GuestLimitError struct {
	MaxGuests int
}

func (e *GuestLimitError) Error() string {
	return fmt.Sprintf("maximum %d guests allowed for this room", e.MaxGuests)
}

// MinStayError reports a stay shorter than the room's minimum
type MinStayError struct {
	MinNights int
}

func (e *MinStayError) Error() string {
	return fmt.Sprintf("Minimum stay is %d nights", e.MinNights)
}
