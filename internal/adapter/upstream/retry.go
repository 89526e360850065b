package upstream

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"
)

// RetryPolicy bounds the attempts made for a single upstream call.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxJitter   time.Duration
}

// DefaultRetryPolicy allows four attempts with 250ms exponential backoff and up to 200ms jitter.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 4,
	BaseDelay:   250 * time.Millisecond,
	MaxJitter:   200 * time.Millisecond,
}

// Delay returns the wait before the retry that follows the given 1-based attempt:
// BaseDelay*2^(attempt-1) plus jitter drawn from [0, MaxJitter).
func (p RetryPolicy) Delay(attempt int, jitter func(time.Duration) time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := p.BaseDelay << (attempt - 1)
	if jitter != nil && p.MaxJitter > 0 {
		delay += jitter(p.MaxJitter)
	}
	return delay
}

// Retryable reports whether a response status is worth another attempt.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return rand.N(max)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
