package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skybox/internal/auth"
	apperrors "skybox/internal/errors"
	"skybox/internal/model"
	"skybox/internal/password"
	"skybox/internal/provision"
	"skybox/internal/repository"
)

// compensationTimeout bounds the bucket release attempt made while unwinding
// a failed registration. The release runs on a detached context so a
// canceled request cannot skip the delete attempt.
const compensationTimeout = 10 * time.Second

// AccountService handles registration and login.
type AccountService interface {
	// Register creates a new account: it reserves a storage bucket with the
	// external provisioner, then commits the user row, releasing the bucket
	// again if the commit fails.
	Register(ctx context.Context, email, rawPassword string) (*model.User, error)
	// Login verifies credentials and issues a bearer token for the account.
	Login(ctx context.Context, email, rawPassword string) (token string, user *model.User, err error)
}

type accountService struct {
	users    repository.UserRepository
	buckets  provision.BucketProvisioner
	tokens   *auth.TokenService
	throttle auth.LoginThrottleInterface
	tokenTTL time.Duration
}

// NewAccountService creates a new account service.
func NewAccountService(
	users repository.UserRepository,
	buckets provision.BucketProvisioner,
	tokens *auth.TokenService,
	throttle auth.LoginThrottleInterface,
	tokenTTL time.Duration,
) AccountService {
	return &accountService{
		users:    users,
		buckets:  buckets,
		tokens:   tokens,
		throttle: throttle,
		tokenTTL: tokenTTL,
	}
}

// Register runs the account-creation saga. The email pre-check is only a
// fast-path rejection; the unique index on the email column is the
// authoritative guard, so a concurrent signup racing past the pre-check
// still fails on insert and is unwound like any other insert failure.
func (s *accountService) Register(ctx context.Context, email, rawPassword string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateAccount
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hash, err := password.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		IsAdmin:      false,
		StorageUsed:  0,
	}

	// Reserve the bucket before touching the database. A failure here leaves
	// no partial state and the signup can simply be retried.
	if err := s.buckets.CreateBucket(ctx, user.ID.String()); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProvisioningFailed, err)
	}

	txErr := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		return repo.Create(ctx, user)
	})
	if txErr != nil {
		s.releaseBucket(user.ID.String())
		if errors.Is(txErr, apperrors.ErrDuplicateAccount) {
			return nil, apperrors.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, txErr)
	}

	return user, nil
}

// releaseBucket is the compensating action for a bucket reservation whose
// account row never committed. A failed release is logged as a
// reconciliation item for operators, never silently dropped.
func (s *accountService) releaseBucket(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), compensationTimeout)
	defer cancel()

	if err := s.buckets.ReleaseBucket(ctx, ownerID); err != nil {
		log.Printf("RECONCILE orphaned bucket owner_id=%s: release failed: %v", ownerID, err)
	}
}

// Login authenticates by email and password and returns a signed token whose
// subject is the account email. Unknown email and wrong password are
// reported identically.
func (s *accountService) Login(ctx context.Context, email, rawPassword string) (string, *model.User, error) {
	if s.throttle.Locked(ctx, email) {
		return "", nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.throttle.RecordFailure(ctx, email)
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !password.Verify(rawPassword, user.PasswordHash) {
		s.throttle.RecordFailure(ctx, email)
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.throttle.Reset(ctx, email)
	return token, user, nil
}
