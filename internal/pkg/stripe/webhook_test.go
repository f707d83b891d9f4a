package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"
)

const testSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte, ts int64) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestConstructEventValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_123","object":"payment_intent"}}}`)
	header := signPayload(t, payload, time.Now().Unix())

	event, err := ConstructEvent(payload, header, testSecret, DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != "evt_1" {
		t.Fatalf("expected event id evt_1, got %s", event.ID)
	}
	if event.Type != EventPaymentSucceeded {
		t.Fatalf("expected type %s, got %s", EventPaymentSucceeded, event.Type)
	}
	if event.PaymentIntentID() != "pi_123" {
		t.Fatalf("expected intent pi_123, got %s", event.PaymentIntentID())
	}
}

func TestConstructEventChargeObjectIntentID(t *testing.T) {
	payload := []byte(`{"id":"evt_2","type":"charge.refunded","data":{"object":{"id":"ch_1","object":"charge","payment_intent":"pi_456"}}}`)
	header := signPayload(t, payload, time.Now().Unix())

	event, err := ConstructEvent(payload, header, testSecret, DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.PaymentIntentID() != "pi_456" {
		t.Fatalf("expected intent pi_456, got %s", event.PaymentIntentID())
	}
}

func TestConstructEventRejectsBadSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_3","type":"payment_intent.succeeded"}`)
	header := fmt.Sprintf("t=%d,v1=deadbeef", time.Now().Unix())

	if _, err := ConstructEvent(payload, header, testSecret, DefaultTolerance); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestConstructEventRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_4","type":"payment_intent.succeeded"}`)
	header := signPayload(t, payload, time.Now().Unix())

	tampered := []byte(`{"id":"evt_4","type":"charge.refunded"}`)
	if _, err := ConstructEvent(tampered, header, testSecret, DefaultTolerance); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestConstructEventRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_5","type":"payment_intent.succeeded"}`)
	header := signPayload(t, payload, time.Now().Add(-time.Hour).Unix())

	if _, err := ConstructEvent(payload, header, testSecret, DefaultTolerance); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature for stale timestamp, got %v", err)
	}
}

func TestConstructEventRejectsMissingHeader(t *testing.T) {
	if _, err := ConstructEvent([]byte(`{}`), "", testSecret, DefaultTolerance); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature for empty header, got %v", err)
	}
}

func TestConstructEventAcceptsSecondV1(t *testing.T) {
	payload := []byte(`{"id":"evt_6","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_789","object":"payment_intent"}}}`)
	ts := time.Now().Unix()
	valid := signPayload(t, payload, ts)
	// Stripe sends multiple v1 entries during secret rolls; any match passes.
	header := fmt.Sprintf("t=%d,v1=0000000000000000,%s", ts, valid[len(fmt.Sprintf("t=%d,", ts)):])

	event, err := ConstructEvent(payload, header, testSecret, DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != EventPaymentFailed {
		t.Fatalf("expected %s, got %s", EventPaymentFailed, event.Type)
	}
}
