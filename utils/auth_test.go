package utils

import (
	"testing"
	"time"
)

func TestExtractNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "alice"},
		{"bob.smith@mail.co.kr", "bob.smith"},
		{"noatsign", "noatsign"},
	}

	for _, tt := range tests {
		if got := ExtractNameFromEmail(tt.email); got != tt.want {
			t.Errorf("ExtractNameFromEmail(%q) = %q; want %q", tt.email, got, tt.want)
		}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("CheckPasswordHash rejected the matching password")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("CheckPasswordHash accepted a non-matching password")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateJWTToken("alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWTToken returned error: %v", err)
	}

	valid, email, err := ValidateTokenAndFetchEmail(token)
	if err != nil {
		t.Fatalf("ValidateTokenAndFetchEmail returned error: %v", err)
	}
	if !valid {
		t.Error("token should be valid")
	}
	if email != "alice@example.com" {
		t.Errorf("email = %q; want %q", email, "alice@example.com")
	}
}

func TestJWTExpired(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateJWTToken("alice@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWTToken returned error: %v", err)
	}

	if _, _, err := ValidateTokenAndFetchEmail(token); err != ErrTokenExpired {
		t.Errorf("error = %v; want ErrTokenExpired", err)
	}
}

func TestGenerateSecretHash(t *testing.T) {
	// Deterministic: same inputs, same hash
	h1 := GenerateSecretHash("alice@example.com", "client-id", "client-secret")
	h2 := GenerateSecretHash("alice@example.com", "client-id", "client-secret")
	if h1 != h2 {
		t.Error("secret hash not deterministic")
	}
	if h1 == GenerateSecretHash("bob@example.com", "client-id", "client-secret") {
		t.Error("secret hash should differ per username")
	}
}
