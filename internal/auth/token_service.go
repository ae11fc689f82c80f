package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	apperrors "skybox/internal/errors"
)

// DefaultTokenTTL is used when no TTL is configured for issued tokens.
const DefaultTokenTTL = 30 * time.Minute

// Claims represents the JWT claims carried by issued tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens with a symmetric secret.
// The signing method is a configured identifier and must match on both ends.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenService creates a token service for the given secret and HMAC
// algorithm identifier (HS256, HS384 or HS512).
func NewTokenService(secret, algorithm string) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Issue signs a token for subject expiring at issue time plus ttl.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the subject claim.
// Any structural problem, signature mismatch, absent subject or elapsed
// expiry yields ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}
	// Tokens without an expiry are rejected: every token must be time-bounded.
	if claims.ExpiresAt == nil || claims.Subject == "" {
		return "", apperrors.ErrInvalidToken
	}
	if !time.Now().Before(claims.ExpiresAt.Time) {
		return "", apperrors.ErrInvalidToken
	}
	return claims.Subject, nil
}

// SigningKey exposes the raw secret for router-level middleware configuration.
func (s *TokenService) SigningKey() []byte {
	return s.secret
}

// Algorithm returns the configured signing method identifier.
func (s *TokenService) Algorithm() string {
	return s.method.Alg()
}
