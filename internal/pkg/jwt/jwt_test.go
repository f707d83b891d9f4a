package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	adminID := uuid.New()

	token, err := svc.GenerateSessionToken(adminID, "admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != adminID {
		t.Errorf("adminID = %s, want %s", claims.AdminID, adminID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).GenerateSessionToken(uuid.New(), "admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = NewService("secret-b", time.Hour).ValidateSessionToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)
	token, err := svc.GenerateSessionToken(uuid.New(), "admin@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = svc.ValidateSessionToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	if _, err := svc.ValidateSessionToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
