package room

import "errors"

var (
	ErrNotFound      = errors.New("room not found")
	ErrSlugTaken     = errors.New("a room with this name already exists")
	ErrHasBookings   = errors.New("room has bookings and cannot be deleted")
	ErrInvalidRoomID = errors.New("invalid room id")
)
