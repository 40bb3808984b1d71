package stream

import "time"

// Reconnect backoff bounds. The first retry waits backoffBase, each
// subsequent retry doubles, and the delay never exceeds backoffCap.
const (
	backoffBase = 1 * time.Second
	backoffCap  = 10 * time.Second
)

// BackoffDelay computes the reconnect delay for the given attempt number
// (1-based): min(base * 2^(attempt-1), cap). Attempts below 1 are treated
// as 1. The result is non-decreasing in attempt.
func BackoffDelay(attempt int, base, cap time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	if d > cap {
		return cap
	}
	return d
}
