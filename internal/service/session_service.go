package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skybox/internal/auth"
	apperrors "skybox/internal/errors"
	"skybox/internal/model"
	"skybox/internal/repository"
)

// SessionService resolves bearer tokens to active accounts. Resolution is a
// single gate: signature and expiry, subject lookup and the active flag are
// all checked before a user is handed to downstream handlers.
type SessionService interface {
	Resolve(ctx context.Context, tokenString string) (*model.User, error)
	ResolveSubject(ctx context.Context, subject string) (*model.User, error)
}

type sessionService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewSessionService creates a new session service.
func NewSessionService(users repository.UserRepository, tokens *auth.TokenService) SessionService {
	return &sessionService{users: users, tokens: tokens}
}

// Resolve validates the token and loads the account it identifies.
// Read-only: no session state is written anywhere.
func (s *sessionService) Resolve(ctx context.Context, tokenString string) (*model.User, error) {
	subject, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return s.ResolveSubject(ctx, subject)
}

// ResolveSubject loads the account for an already-validated token subject.
// A disabled account is reported as ErrInactiveAccount, distinct from an
// unknown subject, so callers can tell the two apart.
func (s *sessionService) ResolveSubject(ctx context.Context, subject string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrInactiveAccount
	}
	return user, nil
}
