// ABOUTME: Retry utilities for API calls with exponential backoff
// ABOUTME: Shared by embedding and completion calls for consistent behavior
package util

import (
	"math/rand/v2"
	"time"
)

// CalculateBackoff returns exponential backoff with jitter.
// Base delay is doubled each attempt, with random jitter up to 25%.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	// Jitter: -25% to +25%
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
