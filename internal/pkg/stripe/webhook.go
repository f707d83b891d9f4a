package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance is how far a webhook timestamp may drift before the
// event is rejected as stale
const DefaultTolerance = 5 * time.Minute

// Event types the booking flow reacts to. Anything else is acknowledged
// and ignored.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventChargeRefunded   = "charge.refunded"
)

// ErrInvalidSignature is returned when the Stripe-Signature header does not
// match the payload
var ErrInvalidSignature = fmt.Errorf("invalid webhook signature")

// Event represents a verified Stripe webhook event
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// PaymentIntentID extracts the payment intent identifier the event refers
// to: the object id for payment_intent.* events, the payment_intent
// reference for charge.* events. Empty when the event carries neither.
func (e *Event) PaymentIntentID() string {
	var obj struct {
		ID            string `json:"id"`
		Object        string `json:"object"`
		PaymentIntent string `json:"payment_intent"`
	}
	if err := json.Unmarshal(e.Data.Object, &obj); err != nil {
		return ""
	}
	if obj.Object == "payment_intent" {
		return obj.ID
	}
	return obj.PaymentIntent
}

// ConstructEvent verifies the Stripe-Signature header against the raw
// payload and returns the parsed event. Verification fails on a missing or
// mismatched v1 signature or a timestamp outside the tolerance window.
//
// Header format: t=<unix>,v1=<hex hmac>[,v1=<hex hmac>...]
// Signed payload: "<t>.<body>", HMAC-SHA256 with the endpoint secret.
func ConstructEvent(payload []byte, sigHeader, secret string, tolerance time.Duration) (*Event, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age < 0 {
			age = -age
		}
		if age > tolerance {
			return nil, ErrInvalidSignature
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	verified := false
	for _, sig := range signatures {
		if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(sig))) == 1 {
			verified = true
		}
	}
	if !verified {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}

// parseSignatureHeader splits "t=...,v1=...,v1=..." into its parts
func parseSignatureHeader(header string) (int64, []string, error) {
	if strings.TrimSpace(header) == "" {
		return 0, nil, ErrInvalidSignature
	}

	var timestamp int64
	var signatures []string

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, parts[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}
