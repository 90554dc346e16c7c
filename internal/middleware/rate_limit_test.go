package middleware

import (
	"testing"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()

	// Burst of 2 allowed
	if !rl.Allow("auth0|ana") {
		t.Error("expected first request allowed")
	}
	if !rl.Allow("auth0|ana") {
		t.Error("expected second request allowed within burst")
	}
	if rl.Allow("auth0|ana") {
		t.Error("expected third request rejected")
	}

	// Limits are per identity
	if !rl.Allow("auth0|beto") {
		t.Error("expected other identity unaffected")
	}
}

func TestRateLimiterStop_Idempotent(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()
	rl.Stop()
}
