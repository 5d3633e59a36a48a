package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "a@b.com", 60)
	if err != nil {
		t.Fatalf("NewAccessToken returned error: %v", err)
	}
	id, err := ParseAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if id.UserID != 42 {
		t.Errorf("UserID = %d, want 42", id.UserID)
	}
	if id.Email != "a@b.com" {
		t.Errorf("Email = %q, want a@b.com", id.Email)
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	issued := time.Now().UTC()
	tok, err := NewAccessToken(testSecret, 1, "a@b.com", 60)
	if err != nil {
		t.Fatalf("NewAccessToken returned error: %v", err)
	}

	// Still valid one minute before expiry.
	at59 := jwt.WithTimeFunc(func() time.Time { return issued.Add(59 * time.Minute) })
	if _, err := ParseAccessToken(testSecret, tok.Token, at59); err != nil {
		t.Errorf("token rejected at +59min: %v", err)
	}

	// Rejected one minute after expiry.
	at61 := jwt.WithTimeFunc(func() time.Time { return issued.Add(61 * time.Minute) })
	if _, err := ParseAccessToken(testSecret, tok.Token, at61); err != ErrInvalidToken {
		t.Errorf("token at +61min: err = %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := ParseAccessToken(testSecret, raw); err != ErrInvalidToken {
			t.Errorf("ParseAccessToken(%q) err = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "a@b.com", 60)
	if err != nil {
		t.Fatalf("NewAccessToken returned error: %v", err)
	}
	if _, err := ParseAccessToken("other-secret", tok.Token); err != ErrInvalidToken {
		t.Errorf("wrong secret: err = %v, want ErrInvalidToken", err)
	}
}
