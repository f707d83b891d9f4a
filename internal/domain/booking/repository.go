package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository handles booking database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// OverlappingBookings returns the occupied ranges of non-cancelled bookings
// that intersect [start, end). Bookings occupy half-open ranges, so a booking
// checking out on start does not conflict.
func (r *Repository) OverlappingBookings(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DateRange, error) {
	query := `
		SELECT check_in AS range_start, check_out AS range_end
		FROM bookings
		WHERE room_id = $1
		  AND booking_status <> 'cancelled'
		  AND check_in < $3
		  AND check_out > $2
		ORDER BY check_in
	`
	var ranges []DateRange
	err := r.db.SelectContext(ctx, &ranges, query, roomID, start, end)
	return ranges, err
}

// OverlappingBlocks returns manual holds intersecting [start, end]. Blocked
// ranges are closed intervals: a block ending on the requested check-in day
// still conflicts.
func (r *Repository) OverlappingBlocks(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DateRange, error) {
	query := `
		SELECT start_date AS range_start, end_date AS range_end
		FROM blocked_dates
		WHERE room_id = $1
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`
	var ranges []DateRange
	err := r.db.SelectContext(ctx, &ranges, query, roomID, start, end)
	return ranges, err
}

// Create inserts a booking. The exclusion constraint on bookings rejects
// overlapping non-cancelled rows for the same room; that surfaces here as
// ErrDatesUnavailable.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, room_id, guest_name, guest_email, guest_phone,
			check_in, check_out, num_guests, total_price,
			payment_status, payment_intent_id, booking_status, special_requests,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.RoomID,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		b.CheckIn,
		b.CheckOut,
		b.NumGuests,
		b.TotalPrice,
		b.PaymentStatus,
		b.PaymentIntentID,
		b.Status,
		b.SpecialRequests,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if isExclusionViolation(err) {
		return ErrDatesUnavailable
	}
	return err
}

// GetByID returns a booking with its room joined, or nil if missing
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `
		SELECT b.*, r.name AS room_name, r.slug AS room_slug
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.id = $1
	`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &b, err
}

// SetPaymentStatusByIntent updates the payment status of the booking carrying
// the given payment intent. Returns found=false when no booking references
// the intent.
func (r *Repository) SetPaymentStatusByIntent(ctx context.Context, intentID string, status PaymentStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = $2, updated_at = NOW()
		WHERE payment_intent_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, intentID, status)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// MarkRefundedByIntent flags a booking refunded and cancels it, freeing the
// dates for rebooking
func (r *Repository) MarkRefundedByIntent(ctx context.Context, intentID string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'refunded', booking_status = 'cancelled', updated_at = NOW()
		WHERE payment_intent_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, intentID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// AdminList returns bookings with rooms joined, newest first, narrowed by the
// filter's non-zero fields
func (r *Repository) AdminList(ctx context.Context, filter AdminListFilter) ([]Booking, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("b.booking_status = $%d", argNum))
		args = append(args, filter.Status)
		argNum++
	}
	if filter.RoomID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("b.room_id = $%d", argNum))
		args = append(args, filter.RoomID)
		argNum++
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("b.check_out > $%d", argNum))
		args = append(args, filter.StartDate)
		argNum++
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, fmt.Sprintf("b.check_in < $%d", argNum))
		args = append(args, filter.EndDate)
		argNum++
	}

	query := `
		SELECT b.*, r.name AS room_name, r.slug AS room_slug
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.created_at DESC"

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	return bookings, err
}

// AdminUpdate applies an admin edit to a booking
func (r *Repository) AdminUpdate(ctx context.Context, id uuid.UUID, req *AdminUpdateRequest) error {
	var sets []string
	var args []interface{}
	argNum := 2

	if req.BookingStatus != nil {
		sets = append(sets, fmt.Sprintf("booking_status = $%d", argNum))
		args = append(args, *req.BookingStatus)
		argNum++
	}
	if req.PaymentStatus != nil {
		sets = append(sets, fmt.Sprintf("payment_status = $%d", argNum))
		args = append(args, *req.PaymentStatus)
		argNum++
	}
	if req.SpecialRequests != nil {
		sets = append(sets, fmt.Sprintf("special_requests = NULLIF($%d, '')", argNum))
		args = append(args, *req.SpecialRequests)
		argNum++
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id = $1", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, append([]interface{}{id}, args...)...)
	if isExclusionViolation(err) {
		// Reactivating a cancelled booking whose dates were retaken
		return ErrDatesUnavailable
	}
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrBookingNotFound
	}
	return err
}

// CreateBlock records a manual hold on a room
func (r *Repository) CreateBlock(ctx context.Context, b *BlockedDate) error {
	query := `
		INSERT INTO blocked_dates (id, room_id, start_date, end_date, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.RoomID,
		b.StartDate,
		b.EndDate,
		b.Reason,
		b.CreatedAt,
	)
	return err
}

// ListBlocks returns manual holds, optionally narrowed to one room
func (r *Repository) ListBlocks(ctx context.Context, roomID uuid.UUID) ([]BlockedDate, error) {
	var blocks []BlockedDate
	if roomID != uuid.Nil {
		query := `SELECT * FROM blocked_dates WHERE room_id = $1 ORDER BY start_date`
		err := r.db.SelectContext(ctx, &blocks, query, roomID)
		return blocks, err
	}
	query := `SELECT * FROM blocked_dates ORDER BY start_date`
	err := r.db.SelectContext(ctx, &blocks, query)
	return blocks, err
}

// DeleteBlock removes a manual hold
func (r *Repository) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM blocked_dates WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrBookingNotFound
	}
	return err
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23P01"
}
