package auth

import (
	"context"
	"strconv"
	"time"

	"skybox/internal/cache"
)

const loginAttemptKeyPrefix = "login_attempts:"

// LoginThrottleInterface defines the interface for login attempt tracking.
type LoginThrottleInterface interface {
	Locked(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// LoginThrottle counts failed login attempts per email in Redis within a
// sliding window. When Redis is unreachable the throttle fails open.
type LoginThrottle struct {
	cache       *cache.Client
	maxAttempts int64
	window      time.Duration
}

// Ensure LoginThrottle implements LoginThrottleInterface
var _ LoginThrottleInterface = (*LoginThrottle)(nil)

// NewLoginThrottle creates a login throttle.
// maxAttempts: failed attempts allowed inside the window before lockout.
// window: counting window, also the lockout duration.
func NewLoginThrottle(cache *cache.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		cache:       cache,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// Locked reports whether login for email is currently locked out.
func (t *LoginThrottle) Locked(ctx context.Context, email string) bool {
	data, err := t.cache.Get(ctx, loginAttemptKeyPrefix+email)
	if err != nil || data == nil {
		return false
	}
	count, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return false
	}
	return count >= t.maxAttempts
}

// RecordFailure registers a failed login attempt for email.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	_, _ = t.cache.Incr(ctx, loginAttemptKeyPrefix+email, t.window)
}

// Reset clears the attempt counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	_ = t.cache.Delete(ctx, loginAttemptKeyPrefix+email)
}
