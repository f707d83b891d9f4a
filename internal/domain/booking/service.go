package booking

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/villamosta/villa-api/internal/domain/room"
	"github.com/villamosta/villa-api/internal/pkg/stay"
)

// Store is the booking persistence the service depends on
type Store interface {
	OverlappingBookings(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DateRange, error)
	OverlappingBlocks(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DateRange, error)
	Create(ctx context.Context, b *Booking) error
	SetPaymentStatusByIntent(ctx context.Context, intentID string, status PaymentStatus) (bool, error)
	MarkRefundedByIntent(ctx context.Context, intentID string) (bool, error)
}

// RoomReader resolves rooms for availability and booking checks
type RoomReader interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

// FeeReader supplies the flat booking fee from site settings
type FeeReader interface {
	BookingFee(ctx context.Context) (float64, error)
}

// PaymentIntentParams describes the payment authorization to open for a
// booking. Amount is in minor units.
type PaymentIntentParams struct {
	Amount       int64
	Currency     string
	ReceiptEmail string
	Metadata     map[string]string
}

// PaymentIntent is the provider's handle for an opened authorization
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentProvider opens and voids payment authorizations
type PaymentProvider interface {
	CreateIntent(ctx context.Context, params PaymentIntentParams) (*PaymentIntent, error)
	CancelIntent(ctx context.Context, id string) error
}

// Service implements availability checks, booking creation and payment
// event application
type Service struct {
	store    Store
	rooms    RoomReader
	fees     FeeReader
	payments PaymentProvider
	redis    *redis.Client
	currency string
}

// NewService creates a booking service. redisClient may be nil; it only
// short-circuits webhook replays and correctness never depends on it.
func NewService(store Store, rooms RoomReader, fees FeeReader, payments PaymentProvider, redisClient *redis.Client, currency string) *Service {
	return &Service{
		store:    store,
		rooms:    rooms,
		fees:     fees,
		payments: payments,
		redis:    redisClient,
		currency: currency,
	}
}

// CheckAvailability evaluates whether a room can host a stay over
// [start, end) and quotes the price. An unavailable result is not an error:
// the caller gets the reason and the conflicting ranges.
func (s *Service) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) (*Availability, error) {
	start = stay.Normalize(start)
	end = stay.Normalize(end)
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	rm, err := s.rooms.GetActiveByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, ErrRoomNotFound
	}

	result := &Availability{
		PricePerNight: rm.BasePrice,
		TotalNights:   stay.Nights(start, end),
		MinNights:     rm.MinNights,
		BlockedDates:  []string{},
	}

	// Too-short stays are rejected before any overlap query runs
	if result.TotalNights < rm.MinNights {
		result.Reason = (&MinStayError{MinNights: rm.MinNights}).Error()
		return result, nil
	}

	bookings, err := s.store.OverlappingBookings(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	blocks, err := s.store.OverlappingBlocks(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	for _, r := range bookings {
		result.BlockedDates = append(result.BlockedDates, r.String())
	}
	for _, r := range blocks {
		result.BlockedDates = append(result.BlockedDates, r.String())
	}
	if len(result.BlockedDates) > 0 {
		result.Reason = "Selected dates are not available"
		return result, nil
	}

	fee, err := s.fees.BookingFee(ctx)
	if err != nil {
		return nil, err
	}
	result.IsAvailable = true
	result.BookingFee = fee
	result.TotalPrice = stay.TotalPrice(rm.BasePrice, result.TotalNights, fee)
	return result, nil
}

// CreateBooking validates the request, opens a payment authorization and
// persists the booking. Returns the booking and the client secret the
// frontend needs to collect payment.
//
// The availability re-check here is a fast path only; the database exclusion
// constraint is what actually prevents two concurrent requests from both
// booking the same dates.
func (s *Service) CreateBooking(ctx context.Context, in CreateInput) (*Booking, string, error) {
	checkIn := stay.Normalize(in.CheckIn)
	checkOut := stay.Normalize(in.CheckOut)

	rm, err := s.rooms.GetActiveByID(ctx, in.RoomID)
	if err != nil {
		return nil, "", err
	}
	if rm == nil {
		return nil, "", ErrRoomNotFound
	}
	if in.NumGuests > rm.MaxGuests {
		return nil, "", &GuestLimitError{MaxGuests: rm.MaxGuests}
	}
	if checkIn.Before(stay.Today()) {
		return nil, "", ErrCheckInPast
	}
	if !checkOut.After(checkIn) {
		return nil, "", ErrInvalidDateRange
	}

	nights := stay.Nights(checkIn, checkOut)
	if nights < rm.MinNights {
		return nil, "", &MinStayError{MinNights: rm.MinNights}
	}

	bookings, err := s.store.OverlappingBookings(ctx, in.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, "", err
	}
	blocks, err := s.store.OverlappingBlocks(ctx, in.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, "", err
	}
	if len(bookings) > 0 || len(blocks) > 0 {
		return nil, "", ErrDatesUnavailable
	}

	fee, err := s.fees.BookingFee(ctx)
	if err != nil {
		return nil, "", err
	}
	total := stay.TotalPrice(rm.BasePrice, nights, fee)

	intent, err := s.payments.CreateIntent(ctx, PaymentIntentParams{
		Amount:       stay.MinorUnits(total),
		Currency:     s.currency,
		ReceiptEmail: in.GuestEmail,
		Metadata: map[string]string{
			"roomId":     in.RoomID.String(),
			"roomName":   rm.Name,
			"checkIn":    stay.FormatDate(checkIn),
			"checkOut":   stay.FormatDate(checkOut),
			"guestName":  in.GuestName,
			"guestEmail": in.GuestEmail,
			"nights":     strconv.Itoa(nights),
		},
	})
	if err != nil {
		log.Error().Err(err).
			Str("room_id", in.RoomID.String()).
			Msg("Failed to create payment intent")
		return nil, "", err
	}

	now := time.Now().UTC()
	b := &Booking{
		ID:              uuid.New(),
		RoomID:          in.RoomID,
		GuestName:       in.GuestName,
		GuestEmail:      in.GuestEmail,
		GuestPhone:      nullString(in.GuestPhone),
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumGuests:       in.NumGuests,
		TotalPrice:      total,
		PaymentStatus:   PaymentPending,
		PaymentIntentID: nullString(intent.ID),
		Status:          StatusConfirmed,
		SpecialRequests: nullString(in.SpecialRequests),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Create(ctx, b); err != nil {
		// The intent is already open; void it so the guest's card is
		// never charged for a booking that does not exist
		if cancelErr := s.payments.CancelIntent(ctx, intent.ID); cancelErr != nil {
			log.Error().Err(cancelErr).
				Str("payment_intent_id", intent.ID).
				Msg("Failed to cancel payment intent after booking insert failure, manual reconciliation needed")
		}
		return nil, "", err
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("room_id", in.RoomID.String()).
		Str("payment_intent_id", intent.ID).
		Float64("total_price", total).
		Msg("Booking created")
	return b, intent.ClientSecret, nil
}

// ApplyPaymentEvent carries a provider webhook event onto the booking it
// references. Unknown event types and unknown intents are acknowledged
// without effect; the status writes are idempotent so replays are harmless.
func (s *Service) ApplyPaymentEvent(ctx context.Context, eventID, eventType, intentID string) error {
	if s.alreadySeen(ctx, eventID) {
		log.Debug().Str("event_id", eventID).Msg("Skipping replayed payment event")
		return nil
	}
	if intentID == "" {
		log.Warn().
			Str("event_id", eventID).
			Str("event_type", eventType).
			Msg("Payment event carries no intent id")
		return nil
	}

	var (
		found bool
		err   error
	)
	switch eventType {
	case "payment_intent.succeeded":
		found, err = s.store.SetPaymentStatusByIntent(ctx, intentID, PaymentPaid)
	case "payment_intent.payment_failed":
		found, err = s.store.SetPaymentStatusByIntent(ctx, intentID, PaymentFailed)
	case "charge.refunded":
		found, err = s.store.MarkRefundedByIntent(ctx, intentID)
	default:
		log.Debug().Str("event_type", eventType).Msg("Ignoring unhandled payment event type")
		return nil
	}
	if err != nil {
		return err
	}
	if !found {
		log.Warn().
			Str("event_type", eventType).
			Str("payment_intent_id", intentID).
			Msg("Payment event for unknown intent")
		return nil
	}

	s.markSeen(ctx, eventID)
	log.Info().
		Str("event_type", eventType).
		Str("payment_intent_id", intentID).
		Msg("Payment event applied")
	return nil
}

// alreadySeen reports whether an event id was fully applied before.
// Duplicate deliveries within the TTL are skipped. With no redis, every
// delivery is processed and the idempotent writes keep that safe.
func (s *Service) alreadySeen(ctx context.Context, eventID string) bool {
	if s.redis == nil || eventID == "" {
		return false
	}
	n, err := s.redis.Exists(ctx, "stripe:event:"+eventID).Result()
	if err != nil {
		log.Warn().Err(err).Msg("Redis event dedup unavailable, processing event")
		return false
	}
	return n > 0
}

// markSeen records an event id only after its store write succeeded. A
// failed write leaves the id unclaimed so the provider's retry is applied
// instead of being skipped as a replay.
func (s *Service) markSeen(ctx context.Context, eventID string) {
	if s.redis == nil || eventID == "" {
		return
	}
	if err := s.redis.Set(ctx, "stripe:event:"+eventID, 1, 24*time.Hour).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to record processed payment event")
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
