package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/andrewa30/portfolio-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrMissingSubject = errors.New("token has no subject")
)

// TokenService issues and verifies signed, time-limited session tokens.
// Possession of a token is authority until expiry; there is no revocation
// list, so compromise is bounded only by the TTL.
type TokenService struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
}

func NewTokenService(cfg *config.Config) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
	}
	return &TokenService{
		secret:    []byte(cfg.JWTSecret),
		method:    method,
		accessTTL: cfg.AccessTokenExpiry,
	}, nil
}

// AccessTTL is the default lifetime for API access tokens.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// Issue signs a token for the given subject. A non-positive ttl falls back
// to the configured access token expiry.
func (s *TokenService) Issue(subject uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.accessTTL
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject.String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify checks signature and expiry server-side and returns the subject id.
func (s *TokenService) Verify(token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, ErrMissingSubject
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrMissingSubject
	}
	return id, nil
}
