package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTManagerFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ISSUER", "issuer-for-test")

	manager, err := NewJWTManagerFromEnv()
	if err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
	if manager != nil {
		t.Fatalf("expected nil manager when env is invalid")
	}
}

func TestNewJWTManagerFromEnvUsesDefaultIssuer(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "")

	manager, err := NewJWTManagerFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manager.issuer != "choo-choo" {
		t.Fatalf("expected default issuer choo-choo, got %q", manager.issuer)
	}
	if manager.TTL() != DefaultTTL {
		t.Fatalf("expected default ttl %s, got %s", DefaultTTL, manager.TTL())
	}
}

func TestJWTManagerSignAndParseRoundTrip(t *testing.T) {
	manager, err := NewJWTManager("test-secret", "test-issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := manager.Sign("665f1c2e9b1d4a0001a1b2c3", "Ada")
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	identity, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if identity.UserID != "665f1c2e9b1d4a0001a1b2c3" {
		t.Fatalf("expected user id, got %q", identity.UserID)
	}
	if identity.Name != "Ada" {
		t.Fatalf("expected name Ada, got %q", identity.Name)
	}
	if identity.TokenID == "" {
		t.Fatalf("expected jti to be set")
	}

	other, _ := manager.Sign("665f1c2e9b1d4a0001a1b2c3", "Ada")
	otherIdentity, err := manager.Parse(other)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if otherIdentity.TokenID == identity.TokenID {
		t.Fatalf("expected distinct token ids per login")
	}
}

func TestJWTManagerParseRejectsInvalidSignature(t *testing.T) {
	manager, _ := NewJWTManager("service-secret", "issuer", time.Hour)

	forgedClaims := jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forgedToken := jwt.NewWithClaims(jwt.SigningMethodHS256, forgedClaims)
	tokenString, err := forgedToken.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign forged token: %v", err)
	}

	if _, err = manager.Parse(tokenString); err == nil {
		t.Fatalf("expected parse error for invalid signature")
	}
}

func TestJWTManagerParseRejectsExpiredToken(t *testing.T) {
	manager, _ := NewJWTManager("service-secret", "issuer", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	manager.now = func() time.Time { return issued }
	token, err := manager.Sign("user-001", "")
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	manager.now = time.Now
	if _, err := manager.Parse(token); err == nil {
		t.Fatalf("expected parse error for expired token")
	}
}

func TestJWTManagerParseRejectsWrongIssuer(t *testing.T) {
	signer, _ := NewJWTManager("service-secret", "someone-else", time.Hour)
	verifier, _ := NewJWTManager("service-secret", "choo-choo", time.Hour)

	token, _ := signer.Sign("user-001", "")
	if _, err := verifier.Parse(token); err == nil {
		t.Fatalf("expected parse error for foreign issuer")
	}
}

func TestJWTManagerParseRejectsMissingSubClaim(t *testing.T) {
	manager, _ := NewJWTManager("service-secret", "issuer", time.Hour)

	claims := jwt.MapClaims{
		"iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(manager.secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, err = manager.Parse(tokenString)
	if err == nil {
		t.Fatalf("expected parse error for missing sub claim")
	}
	if !strings.Contains(err.Error(), "token missing sub claim") {
		t.Fatalf("expected missing sub error, got %v", err)
	}
}
