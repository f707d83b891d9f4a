package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/villamosta/villa-api/internal/domain/room"
	"github.com/villamosta/villa-api/internal/pkg/stay"
)

type stubStore struct {
	overlapBookings []DateRange
	overlapBlocks   []DateRange
	overlapCalls    int

	created   *Booking
	createErr error

	setIntent  string
	setStatus  PaymentStatus
	setFound   bool
	setCalls   int
	setErrOnce error

	refundIntent string
	refundFound  bool
	refundCalls  int
}

func (s *stubStore) OverlappingBookings(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DateRange, error) {
	s.overlapCalls++
	return s.overlapBookings, nil
}

func (s *stubStore) OverlappingBlocks(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]DateRange, error) {
	s.overlapCalls++
	return s.overlapBlocks, nil
}

func (s *stubStore) Create(ctx context.Context, b *Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = b
	return nil
}

func (s *stubStore) SetPaymentStatusByIntent(ctx context.Context, intentID string, status PaymentStatus) (bool, error) {
	s.setCalls++
	if s.setErrOnce != nil {
		err := s.setErrOnce
		s.setErrOnce = nil
		return false, err
	}
	s.setIntent = intentID
	s.setStatus = status
	return s.setFound, nil
}

func (s *stubStore) MarkRefundedByIntent(ctx context.Context, intentID string) (bool, error) {
	s.refundCalls++
	s.refundIntent = intentID
	return s.refundFound, nil
}

type stubRooms struct {
	rm *room.Room
}

func (s *stubRooms) GetActiveByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	if s.rm != nil && s.rm.ID == id {
		return s.rm, nil
	}
	return nil, nil
}

type stubFees struct {
	fee float64
}

func (s *stubFees) BookingFee(ctx context.Context) (float64, error) {
	return s.fee, nil
}

type stubPayments struct {
	intent     *PaymentIntent
	createErr  error
	lastParams PaymentIntentParams
	cancelled  []string
	cancelErr  error
}

func (s *stubPayments) CreateIntent(ctx context.Context, params PaymentIntentParams) (*PaymentIntent, error) {
	s.lastParams = params
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.intent, nil
}

func (s *stubPayments) CancelIntent(ctx context.Context, id string) error {
	s.cancelled = append(s.cancelled, id)
	return s.cancelErr
}

func testRoom() *room.Room {
	return &room.Room{
		ID:        uuid.New(),
		Name:      "Garden Suite",
		Slug:      "garden-suite",
		BasePrice: 150,
		MaxGuests: 4,
		MinNights: 2,
		IsActive:  true,
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := stay.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestCheckAvailabilityOpenDates(t *testing.T) {
	rm := testRoom()
	store := &stubStore{}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{fee: 25}, &stubPayments{}, nil, "eur")

	got, err := svc.CheckAvailability(context.Background(), rm.ID, mustDate(t, "2026-09-10"), mustDate(t, "2026-09-13"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsAvailable {
		t.Fatalf("expected available, got reason %q", got.Reason)
	}
	if got.TotalNights != 3 {
		t.Errorf("totalNights = %d, want 3", got.TotalNights)
	}
	if got.PricePerNight != 150 {
		t.Errorf("pricePerNight = %v, want 150", got.PricePerNight)
	}
	if got.BookingFee != 25 {
		t.Errorf("bookingFee = %v, want 25", got.BookingFee)
	}
	if got.TotalPrice != 475 {
		t.Errorf("totalPrice = %v, want 475", got.TotalPrice)
	}
	if len(got.BlockedDates) != 0 {
		t.Errorf("blockedDates = %v, want empty", got.BlockedDates)
	}
}

func TestCheckAvailabilityMinStayShortCircuits(t *testing.T) {
	rm := testRoom()
	rm.MinNights = 3
	store := &stubStore{}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{fee: 25}, &stubPayments{}, nil, "eur")

	got, err := svc.CheckAvailability(context.Background(), rm.ID, mustDate(t, "2026-09-10"), mustDate(t, "2026-09-12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAvailable {
		t.Fatal("expected unavailable")
	}
	if got.Reason != "Minimum stay is 3 nights" {
		t.Errorf("reason = %q", got.Reason)
	}
	if got.TotalPrice != 0 {
		t.Errorf("totalPrice = %v, want 0", got.TotalPrice)
	}
	if got.PricePerNight != 150 {
		t.Errorf("pricePerNight = %v, want 150", got.PricePerNight)
	}
	if store.overlapCalls != 0 {
		t.Errorf("overlap queries ran %d times for a too-short stay", store.overlapCalls)
	}
}

func TestCheckAvailabilityConflictingBooking(t *testing.T) {
	rm := testRoom()
	store := &stubStore{
		overlapBookings: []DateRange{{
			Start: mustDate(t, "2026-09-11"),
			End:   mustDate(t, "2026-09-14"),
		}},
	}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{}, &stubPayments{}, nil, "eur")

	got, err := svc.CheckAvailability(context.Background(), rm.ID, mustDate(t, "2026-09-10"), mustDate(t, "2026-09-13"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAvailable {
		t.Fatal("expected unavailable")
	}
	if len(got.BlockedDates) != 1 || got.BlockedDates[0] != "2026-09-11 to 2026-09-14" {
		t.Errorf("blockedDates = %v", got.BlockedDates)
	}
	if got.TotalPrice != 0 {
		t.Errorf("totalPrice = %v, want 0", got.TotalPrice)
	}
}

func TestCheckAvailabilityListsBlocksAfterBookings(t *testing.T) {
	rm := testRoom()
	store := &stubStore{
		overlapBookings: []DateRange{{
			Start: mustDate(t, "2026-09-10"),
			End:   mustDate(t, "2026-09-12"),
		}},
		overlapBlocks: []DateRange{{
			Start: mustDate(t, "2026-09-13"),
			End:   mustDate(t, "2026-09-13"),
		}},
	}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{}, &stubPayments{}, nil, "eur")

	got, err := svc.CheckAvailability(context.Background(), rm.ID, mustDate(t, "2026-09-10"), mustDate(t, "2026-09-14"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2026-09-10 to 2026-09-12", "2026-09-13 to 2026-09-13"}
	if len(got.BlockedDates) != len(want) {
		t.Fatalf("blockedDates = %v, want %v", got.BlockedDates, want)
	}
	for i := range want {
		if got.BlockedDates[i] != want[i] {
			t.Errorf("blockedDates[%d] = %q, want %q", i, got.BlockedDates[i], want[i])
		}
	}
}

func TestCheckAvailabilityRoomNotFound(t *testing.T) {
	svc := NewService(&stubStore{}, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	_, err := svc.CheckAvailability(context.Background(), uuid.New(), mustDate(t, "2026-09-10"), mustDate(t, "2026-09-13"))
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestCheckAvailabilityInvertedRange(t *testing.T) {
	rm := testRoom()
	svc := NewService(&stubStore{}, &stubRooms{rm: rm}, &stubFees{}, &stubPayments{}, nil, "eur")

	_, err := svc.CheckAvailability(context.Background(), rm.ID, mustDate(t, "2026-09-13"), mustDate(t, "2026-09-10"))
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}

	_, err = svc.CheckAvailability(context.Background(), rm.ID, mustDate(t, "2026-09-10"), mustDate(t, "2026-09-10"))
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("zero-night err = %v, want ErrInvalidDateRange", err)
	}
}

func TestCheckAvailabilityIsReadOnly(t *testing.T) {
	rm := testRoom()
	store := &stubStore{}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{fee: 10}, &stubPayments{}, nil, "eur")

	for i := 0; i < 3; i++ {
		got, err := svc.CheckAvailability(context.Background(), rm.ID, mustDate(t, "2026-09-10"), mustDate(t, "2026-09-13"))
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if !got.IsAvailable {
			t.Fatalf("call %d: expected available", i)
		}
	}
	if store.created != nil {
		t.Fatal("availability check wrote a booking")
	}
}
