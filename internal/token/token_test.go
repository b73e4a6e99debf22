// ABOUTME: Tests for JWT generation and verification
// ABOUTME: Covers round-trip, expiry, tampering, and secret length checks

package token

import (
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("academy-token-test-secret-32byte")

func TestGenerateVerify_RoundTrip(t *testing.T) {
	v, err := NewJWTVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewJWTVerifier() error = %v", err)
	}

	tok, err := v.Generate("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	userID, err := v.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Verify() = %q, want \"user-1\"", userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	v, _ := NewJWTVerifier(testSecret)

	tok, err := v.Generate("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := v.Verify(tok); err != ErrExpiredToken {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	v, _ := NewJWTVerifier(testSecret)
	other, _ := NewJWTVerifier([]byte("another-token-secret-of-32-bytes"))

	tok, _ := v.Generate("user-1", time.Hour)
	if _, err := other.Verify(tok); err == nil {
		t.Error("expected verification failure with wrong secret")
	}
}

func TestVerify_Garbage(t *testing.T) {
	v, _ := NewJWTVerifier(testSecret)
	if _, err := v.Verify("not-a-jwt"); err == nil {
		t.Error("expected verification failure for garbage token")
	}
}

func TestNewJWTVerifier_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTVerifier([]byte("short"))
	if err == nil {
		t.Fatal("expected error for short secret")
	}
	if !strings.Contains(err.Error(), "secret too short") {
		t.Errorf("error = %v, want weak-secret error", err)
	}
}
