package booking

import (
	"context"
	"crypto/hmac"
	"errors"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestApplyPaymentEventSucceeded(t *testing.T) {
	store := &stubStore{setFound: true}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	if err := svc.ApplyPaymentEvent(context.Background(), "evt_1", "payment_intent.succeeded", "pi_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.setIntent != "pi_123" || store.setStatus != PaymentPaid {
		t.Errorf("set %q to %q, want pi_123 to paid", store.setIntent, store.setStatus)
	}
}

func TestApplyPaymentEventFailed(t *testing.T) {
	store := &stubStore{setFound: true}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	if err := svc.ApplyPaymentEvent(context.Background(), "evt_2", "payment_intent.payment_failed", "pi_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.setStatus != PaymentFailed {
		t.Errorf("status = %q, want failed", store.setStatus)
	}
}

func TestApplyPaymentEventRefundCancelsBooking(t *testing.T) {
	store := &stubStore{refundFound: true}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	if err := svc.ApplyPaymentEvent(context.Background(), "evt_3", "charge.refunded", "pi_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.refundCalls != 1 || store.refundIntent != "pi_123" {
		t.Errorf("refund calls = %d intent = %q", store.refundCalls, store.refundIntent)
	}
	if store.setCalls != 0 {
		t.Error("refund went through the plain status update")
	}
}

func TestApplyPaymentEventUnknownTypeIsNoop(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	if err := svc.ApplyPaymentEvent(context.Background(), "evt_4", "customer.created", "pi_123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.setCalls != 0 || store.refundCalls != 0 {
		t.Error("unhandled event type touched the store")
	}
}

func TestApplyPaymentEventUnknownIntentIsAcked(t *testing.T) {
	store := &stubStore{setFound: false}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	if err := svc.ApplyPaymentEvent(context.Background(), "evt_5", "payment_intent.succeeded", "pi_unknown"); err != nil {
		t.Fatalf("unknown intent should not error, got %v", err)
	}
}

func TestApplyPaymentEventEmptyIntent(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	if err := svc.ApplyPaymentEvent(context.Background(), "evt_6", "payment_intent.succeeded", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.setCalls != 0 {
		t.Error("event without intent touched the store")
	}
}

func TestApplyPaymentEventReplayIsIdempotent(t *testing.T) {
	store := &stubStore{setFound: true}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	// Without redis both deliveries run; the update writes the same value
	// twice which is harmless
	for i := 0; i < 2; i++ {
		if err := svc.ApplyPaymentEvent(context.Background(), "evt_7", "payment_intent.succeeded", "pi_123"); err != nil {
			t.Fatalf("delivery %d: %v", i, err)
		}
	}
	if store.setCalls != 2 {
		t.Fatalf("setCalls = %d, want 2", store.setCalls)
	}
	if store.setStatus != PaymentPaid {
		t.Errorf("status = %q, want paid", store.setStatus)
	}
}

func TestApplyPaymentEventRetriedAfterStoreError(t *testing.T) {
	store := &stubStore{setFound: true, setErrOnce: errors.New("connection reset")}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")

	// The first delivery fails at the store and must surface the error, so
	// the provider retries instead of treating the event as handled
	if err := svc.ApplyPaymentEvent(context.Background(), "evt_8", "payment_intent.succeeded", "pi_123"); err == nil {
		t.Fatal("expected error from failed store update")
	}

	// The retried delivery of the same event id must still be applied
	if err := svc.ApplyPaymentEvent(context.Background(), "evt_8", "payment_intent.succeeded", "pi_123"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if store.setCalls != 2 {
		t.Fatalf("setCalls = %d, want 2", store.setCalls)
	}
	if store.setIntent != "pi_123" || store.setStatus != PaymentPaid {
		t.Errorf("set %q to %q, want pi_123 to paid", store.setIntent, store.setStatus)
	}
}

func signWebhook(secret string, payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestStripeWebhookHandler(t *testing.T) {
	const secret = "whsec_test"

	store := &stubStore{setFound: true}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")
	h := NewHandler(svc, nil, secret)

	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_123","object":"payment_intent"}}}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signWebhook(secret, payload, time.Now()))
	rec := httptest.NewRecorder()
	h.StripeWebhook(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Received bool `json:"received"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || !body.Data.Received {
		t.Errorf("body = %s", rec.Body.String())
	}
	if store.setIntent != "pi_123" || store.setStatus != PaymentPaid {
		t.Errorf("set %q to %q, want pi_123 to paid", store.setIntent, store.setStatus)
	}
}

func TestStripeWebhookHandlerRejectsBadSignature(t *testing.T) {
	store := &stubStore{setFound: true}
	svc := NewService(store, &stubRooms{}, &stubFees{}, &stubPayments{}, nil, "eur")
	h := NewHandler(svc, nil, "whsec_test")

	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_123","object":"payment_intent"}}}`)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Stripe-Signature", signWebhook("whsec_wrong", payload, time.Now()))
	rec := httptest.NewRecorder()
	h.StripeWebhook(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if store.setCalls != 0 {
		t.Error("unverified event touched the store")
	}
}
