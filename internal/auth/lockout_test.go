package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skybox/internal/cache"
)

// The throttle fails open: without a reachable Redis the counter reads as
// zero and login is never locked out.
func TestLoginThrottleFailsOpen(t *testing.T) {
	throttle := NewLoginThrottle(&cache.Client{}, 3, time.Minute)
	ctx := context.Background()

	assert.False(t, throttle.Locked(ctx, "u@test.io"))

	throttle.RecordFailure(ctx, "u@test.io")
	throttle.RecordFailure(ctx, "u@test.io")
	throttle.RecordFailure(ctx, "u@test.io")

	assert.False(t, throttle.Locked(ctx, "u@test.io"))

	throttle.Reset(ctx, "u@test.io")
	assert.False(t, throttle.Locked(ctx, "u@test.io"))
}
