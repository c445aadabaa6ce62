package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	// Burst allows two immediate requests, the third is rejected.
	assert.True(t, rl.Allow("user-1"))
	assert.True(t, rl.Allow("user-1"))
	assert.False(t, rl.Allow("user-1"))

	// Another key has its own bucket.
	assert.True(t, rl.Allow("user-2"))
}
