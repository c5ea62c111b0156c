package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := NewHMACService("test-secret")
	userID := uuid.New()

	token, err := svc.Sign(userID, "dewi@example.com", time.Hour)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewHMACService("test-secret")
	token, err := svc.Sign(uuid.New(), "", time.Minute)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewHMACService("secret-a").Sign(uuid.New(), "", time.Hour)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := NewHMACService("secret-b").ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewHMACService("test-secret")
	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
