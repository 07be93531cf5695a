package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-signing-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("subject = %q, want user-123", userID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-123", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken(token, "another-secret"); err == nil {
		t.Fatal("token with wrong signature accepted")
	}
}

// issuedAgo signs a token as if it had been issued in the past, keeping the
// standard 30-day lifetime.
func issuedAgo(t *testing.T, age time.Duration) string {
	t.Helper()
	issued := time.Now().Add(-age)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(30 * 24 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestTokenLifetime(t *testing.T) {
	if _, err := ParseToken(issuedAgo(t, 29*24*time.Hour), testSecret); err != nil {
		t.Fatalf("29-day-old token rejected: %v", err)
	}

	if _, err := ParseToken(issuedAgo(t, 31*24*time.Hour), testSecret); err == nil {
		t.Fatal("31-day-old token accepted")
	}
}

func TestParseTokenRejectsWrongAlgorithm(t *testing.T) {
	// "none" and non-HMAC algorithms must not pass the method check.
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := ParseToken(unsigned, testSecret); err == nil {
		t.Fatal("unsigned token accepted")
	}
}
