package services

import (
	"errors"
	"testing"
	"time"

	"github.com/andrewa30/portfolio-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestNewTokenService_RejectsNonHMACAlgorithms(t *testing.T) {
	for _, alg := range []string{"RS256", "none", "ES256", "bogus"} {
		cfg := testConfig()
		cfg.JWTAlgorithm = alg
		if _, err := NewTokenService(cfg); err == nil {
			t.Errorf("algorithm %q: expected error, got nil", alg)
		}
	}
}

func TestTokenService_IssueVerifyRoundtrip(t *testing.T) {
	tokens := testTokenService(t)
	subject := uuid.New()

	for _, ttl := range []time.Duration{0, time.Second, time.Hour} {
		signed, err := tokens.Issue(subject, ttl)
		if err != nil {
			t.Fatalf("Issue(ttl=%v): %v", ttl, err)
		}
		got, err := tokens.Verify(signed)
		if err != nil {
			t.Fatalf("Verify(ttl=%v): %v", ttl, err)
		}
		if got != subject {
			t.Fatalf("Verify returned %v, want %v", got, subject)
		}
	}
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	tokens := testTokenService(t)
	subject := uuid.New()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject.String(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tokens.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsMissingSubject(t *testing.T) {
	tokens := testTokenService(t)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := noSub.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tokens.Verify(signed); !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}

func TestTokenService_RejectsWrongKey(t *testing.T) {
	tokens := testTokenService(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tokens.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsOtherSigningMethod(t *testing.T) {
	tokens := testTokenService(t)

	// Signed with the right key but the wrong HMAC variant; the verifier
	// pins the configured algorithm.
	other := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tokens.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsMalformedToken(t *testing.T) {
	tokens := testTokenService(t)
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := tokens.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestTokenService_DefaultTTLFromConfig(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTAlgorithm:      "HS256",
		AccessTokenExpiry: 42 * time.Minute,
	}
	tokens, err := NewTokenService(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if tokens.AccessTTL() != 42*time.Minute {
		t.Fatalf("AccessTTL = %v, want 42m", tokens.AccessTTL())
	}
}
