package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCreateIntentSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid method"))
			return
		}
		if r.URL.Path != "/v1/payment_intents" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid path"))
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_key" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid auth"))
			return
		}
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Form.Get("amount") != "21000" || r.Form.Get("currency") != "eur" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid form"))
			return
		}
		if r.Form.Get("receipt_email") != "guest@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("missing receipt email"))
			return
		}
		if r.Form.Get("metadata[roomName]") != "Garden Suite" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("missing metadata"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","status":"requires_payment_method"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{SecretKey: "sk_test_key", BaseURL: server.URL, Timeout: time.Second})
	intent, err := client.CreateIntent(context.Background(), CreateIntentRequest{
		Amount:       21000,
		Currency:     "EUR",
		ReceiptEmail: "guest@example.com",
		Metadata:     map[string]string{"roomName": "Garden Suite"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.ID != "pi_123" || intent.ClientSecret != "pi_123_secret_abc" {
		t.Fatalf("unexpected intent: %+v", intent)
	}
}

func TestCreateIntentRejectsInvalidAmount(t *testing.T) {
	client := NewClient(Config{SecretKey: "sk_test_key"})
	if _, err := client.CreateIntent(context.Background(), CreateIntentRequest{Amount: 0, Currency: "eur"}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestCreateIntentHTTPErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{SecretKey: "sk_test_key", BaseURL: server.URL, Timeout: time.Second})
	_, err := client.CreateIntent(context.Background(), CreateIntentRequest{Amount: 100, Currency: "eur"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "402") || !strings.Contains(err.Error(), "card declined") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}

func TestCancelIntent(t *testing.T) {
	var cancelled string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/cancel") {
			cancelled = strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/payment_intents/"), "/cancel")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"` + cancelled + `","status":"canceled"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{SecretKey: "sk_test_key", BaseURL: server.URL, Timeout: time.Second})
	if err := client.CancelIntent(context.Background(), "pi_void_me"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled != "pi_void_me" {
		t.Fatalf("expected cancel for pi_void_me, got %q", cancelled)
	}
}

func TestCancelIntentRejectsEmptyID(t *testing.T) {
	client := NewClient(Config{SecretKey: "sk_test_key"})
	if err := client.CancelIntent(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty intent id")
	}
}
