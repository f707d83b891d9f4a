package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validInput(t *testing.T, roomID uuid.UUID) CreateInput {
	t.Helper()
	return CreateInput{
		RoomID:     roomID,
		CheckIn:    mustDate(t, "2026-09-10"),
		CheckOut:   mustDate(t, "2026-09-13"),
		GuestName:  "Anna Keller",
		GuestEmail: "anna@example.com",
		NumGuests:  2,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	rm := testRoom()
	store := &stubStore{}
	payments := &stubPayments{intent: &PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{fee: 25}, payments, nil, "eur")

	b, secret, err := svc.CreateBooking(context.Background(), validInput(t, rm.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_123_secret" {
		t.Errorf("clientSecret = %q", secret)
	}
	if b.TotalPrice != 475 {
		t.Errorf("totalPrice = %v, want 475", b.TotalPrice)
	}
	if b.PaymentStatus != PaymentPending {
		t.Errorf("paymentStatus = %q, want pending", b.PaymentStatus)
	}
	if b.Status != StatusConfirmed {
		t.Errorf("bookingStatus = %q, want confirmed", b.Status)
	}
	if !b.PaymentIntentID.Valid || b.PaymentIntentID.String != "pi_123" {
		t.Errorf("paymentIntentID = %+v", b.PaymentIntentID)
	}
	if store.created == nil {
		t.Fatal("booking was not persisted")
	}

	// Amount is charged in minor units with the stay details attached
	if payments.lastParams.Amount != 47500 {
		t.Errorf("intent amount = %d, want 47500", payments.lastParams.Amount)
	}
	if payments.lastParams.Currency != "eur" {
		t.Errorf("intent currency = %q", payments.lastParams.Currency)
	}
	if payments.lastParams.ReceiptEmail != "anna@example.com" {
		t.Errorf("receipt email = %q", payments.lastParams.ReceiptEmail)
	}
	md := payments.lastParams.Metadata
	if md["roomName"] != "Garden Suite" || md["checkIn"] != "2026-09-10" || md["checkOut"] != "2026-09-13" || md["nights"] != "3" {
		t.Errorf("intent metadata = %v", md)
	}
}

func TestCreateBookingGuestLimit(t *testing.T) {
	rm := testRoom()
	payments := &stubPayments{intent: &PaymentIntent{ID: "pi_123"}}
	svc := NewService(&stubStore{}, &stubRooms{rm: rm}, &stubFees{}, payments, nil, "eur")

	in := validInput(t, rm.ID)
	in.NumGuests = rm.MaxGuests + 1

	_, _, err := svc.CreateBooking(context.Background(), in)
	var guestErr *GuestLimitError
	if !errors.As(err, &guestErr) {
		t.Fatalf("err = %v, want GuestLimitError", err)
	}
	if guestErr.MaxGuests != rm.MaxGuests {
		t.Errorf("MaxGuests = %d, want %d", guestErr.MaxGuests, rm.MaxGuests)
	}
	if payments.lastParams.Amount != 0 {
		t.Error("payment intent was opened for a rejected booking")
	}
}

func TestCreateBookingMinStay(t *testing.T) {
	rm := testRoom()
	rm.MinNights = 5
	payments := &stubPayments{intent: &PaymentIntent{ID: "pi_123"}}
	svc := NewService(&stubStore{}, &stubRooms{rm: rm}, &stubFees{}, payments, nil, "eur")

	_, _, err := svc.CreateBooking(context.Background(), validInput(t, rm.ID))
	var stayErr *MinStayError
	if !errors.As(err, &stayErr) {
		t.Fatalf("err = %v, want MinStayError", err)
	}
	if stayErr.Error() != "Minimum stay is 5 nights" {
		t.Errorf("message = %q", stayErr.Error())
	}
	if payments.lastParams.Amount != 0 {
		t.Error("payment intent was opened for a rejected booking")
	}
}

func TestCreateBookingConflictBeforeIntent(t *testing.T) {
	rm := testRoom()
	store := &stubStore{
		overlapBookings: []DateRange{{
			Start: mustDate(t, "2026-09-11"),
			End:   mustDate(t, "2026-09-14"),
		}},
	}
	payments := &stubPayments{intent: &PaymentIntent{ID: "pi_123"}}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{}, payments, nil, "eur")

	_, _, err := svc.CreateBooking(context.Background(), validInput(t, rm.ID))
	if !errors.Is(err, ErrDatesUnavailable) {
		t.Fatalf("err = %v, want ErrDatesUnavailable", err)
	}
	if payments.lastParams.Amount != 0 {
		t.Error("payment intent was opened for conflicting dates")
	}
}

func TestCreateBookingVoidsIntentWhenInsertFails(t *testing.T) {
	rm := testRoom()
	store := &stubStore{createErr: ErrDatesUnavailable}
	payments := &stubPayments{intent: &PaymentIntent{ID: "pi_123", ClientSecret: "cs"}}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{}, payments, nil, "eur")

	_, _, err := svc.CreateBooking(context.Background(), validInput(t, rm.ID))
	if !errors.Is(err, ErrDatesUnavailable) {
		t.Fatalf("err = %v, want ErrDatesUnavailable", err)
	}
	if len(payments.cancelled) != 1 || payments.cancelled[0] != "pi_123" {
		t.Fatalf("cancelled intents = %v, want [pi_123]", payments.cancelled)
	}
	if store.created != nil {
		t.Fatal("booking row exists after failed insert")
	}
}

func TestCreateBookingReturnsInsertErrorEvenIfCancelFails(t *testing.T) {
	rm := testRoom()
	insertErr := errors.New("connection reset")
	store := &stubStore{createErr: insertErr}
	payments := &stubPayments{
		intent:    &PaymentIntent{ID: "pi_123"},
		cancelErr: errors.New("gateway timeout"),
	}
	svc := NewService(store, &stubRooms{rm: rm}, &stubFees{}, payments, nil, "eur")

	_, _, err := svc.CreateBooking(context.Background(), validInput(t, rm.ID))
	if !errors.Is(err, insertErr) {
		t.Fatalf("err = %v, want insert error", err)
	}
	if len(payments.cancelled) != 1 {
		t.Fatalf("cancel attempts = %d, want 1", len(payments.cancelled))
	}
}

func TestCreateBookingPastCheckIn(t *testing.T) {
	rm := testRoom()
	svc := NewService(&stubStore{}, &stubRooms{rm: rm}, &stubFees{}, &stubPayments{}, nil, "eur")

	in := validInput(t, rm.ID)
	in.CheckIn = mustDate(t, "2020-01-01")
	in.CheckOut = mustDate(t, "2020-01-05")

	_, _, err := svc.CreateBooking(context.Background(), in)
	if !errors.Is(err, ErrCheckInPast) {
		t.Fatalf("err = %v, want ErrCheckInPast", err)
	}
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	svc := NewService(&stubStore{}, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	_, _, err := svc.CreateBooking(context.Background(), validInput(t, uuid.New()))
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestCreateBookingUnknownRoomWinsOverBadDates(t *testing.T) {
	svc := NewService(&stubStore{}, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	in := validInput(t, uuid.New())
	in.CheckIn = mustDate(t, "2020-01-05")
	in.CheckOut = mustDate(t, "2020-01-01")

	_, _, err := svc.CreateBooking(context.Background(), in)
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestCreateBookingGuestLimitWinsOverBadDates(t *testing.T) {
	rm := testRoom()
	svc := NewService(&stubStore{}, &stubRooms{rm: rm}, &stubFees{}, &stubPayments{}, nil, "eur")

	in := validInput(t, rm.ID)
	in.NumGuests = rm.MaxGuests + 1
	in.CheckIn = mustDate(t, "2020-01-01")
	in.CheckOut = mustDate(t, "2020-01-05")

	_, _, err := svc.CreateBooking(context.Background(), in)
	var guestErr *GuestLimitError
	if !errors.As(err, &guestErr) {
		t.Fatalf("err = %v, want GuestLimitError", err)
	}
}
