package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	apperrors "skybox/internal/errors"
)

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantErr   bool
	}{
		{"HS256", "HS256", false},
		{"HS384", "HS384", false},
		{"HS512", "HS512", false},
		{"asymmetric method rejected", "RS256", true},
		{"none rejected", "none", true},
		{"unknown rejected", "HS1024", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTokenService("test-secret", tt.algorithm)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.algorithm, svc.Algorithm())
			}
		})
	}
}

func TestIssueAndValidate(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256")
	assert.NoError(t, err)

	token, err := svc.Issue("u@test.io", time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "u@test.io", subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenService("secret-a", "HS256")
	validator, _ := NewTokenService("secret-b", "HS256")

	token, err := issuer.Issue("u@test.io", time.Minute)
	assert.NoError(t, err)

	_, err = validator.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsWrongAlgorithm(t *testing.T) {
	issuer, _ := NewTokenService("test-secret", "HS384")
	validator, _ := NewTokenService("test-secret", "HS256")

	token, err := issuer.Issue("u@test.io", time.Minute)
	assert.NoError(t, err)

	_, err = validator.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsMalformed(t *testing.T) {
	svc, _ := NewTokenService("test-secret", "HS256")

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc, _ := NewTokenService("test-secret", "HS256")

	token, err := svc.Issue("u@test.io", time.Millisecond)
	assert.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsAtExactExpiry(t *testing.T) {
	svc, _ := NewTokenService("test-secret", "HS256")

	// A token whose expiry equals the current instant is already invalid.
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u@test.io",
			ExpiresAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	svc, _ := NewTokenService("test-secret", "HS256")

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsMissingExpiry(t *testing.T) {
	svc, _ := NewTokenService("test-secret", "HS256")

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u@test.io",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestIssueDefaultTTL(t *testing.T) {
	svc, _ := NewTokenService("test-secret", "HS256")

	token, err := svc.Issue("u@test.io", 0)
	assert.NoError(t, err)

	subject, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "u@test.io", subject)
}
