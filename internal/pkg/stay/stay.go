// Package stay holds the calendar-date and pricing arithmetic shared by the
// availability and booking flows. A stay occupies the half-open range
// [check-in, check-out): the check-out day is not charged.
package stay

import (
	"math"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns today's calendar date at UTC midnight
func Today() time.Time {
	return Normalize(time.Now().UTC())
}

// Normalize truncates a timestamp to its calendar date at UTC midnight
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights between check-in and check-out,
// rounding any partial day up
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// TotalPrice computes base price per night times nights plus a flat fee
func TotalPrice(basePerNight float64, nights int, flatFee float64) float64 {
	return basePerNight*float64(nights) + flatFee
}

// MinorUnits converts a price to integer minor units (cents) for the
// payment processor
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
