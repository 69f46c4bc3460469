package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	token, err := m.Issue(Principal{UserID: 7, Username: "admin", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	p, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if p.UserID != 7 || p.Username != "admin" || p.Role != "admin" {
		t.Fatalf("unexpected principal: %#v", p)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	verifier, err := NewTokenManager("secret-b", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	token, err := issuer.Issue(Principal{UserID: 1, Username: "admin", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify() with wrong secret = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	issued := time.Now()
	m.now = func() time.Time { return issued }
	token, err := m.Issue(Principal{UserID: 1, Username: "admin", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify() after expiry = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	for _, token := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q) = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("  ", time.Hour); err == nil {
		t.Fatal("expected error for blank secret")
	}
}
