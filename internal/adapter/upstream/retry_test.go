package upstream

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestRetryPolicyDelayGrowsExponentially(t *testing.T) {
	p := DefaultRetryPolicy
	noJitter := func(time.Duration) time.Duration { return 0 }
	maxJitter := func(max time.Duration) time.Duration { return max - 1 }

	var prevMax time.Duration
	for attempt := 1; attempt < p.MaxAttempts; attempt++ {
		min := p.Delay(attempt, noJitter)
		want := 250 * time.Millisecond * time.Duration(1<<(attempt-1))
		if min != want {
			t.Fatalf("attempt %d: expected %v, got %v", attempt, want, min)
		}
		max := p.Delay(attempt, maxJitter)
		if max-min >= p.MaxJitter {
			t.Fatalf("attempt %d: jitter %v exceeds bound", attempt, max-min)
		}
		if attempt > 1 && min <= prevMax {
			t.Fatalf("attempt %d: minimum delay %v does not exceed previous maximum %v", attempt, min, prevMax)
		}
		prevMax = max
	}

	if got := p.Delay(0, nil); got != p.BaseDelay {
		t.Fatalf("expected attempt below one to clamp to base delay, got %v", got)
	}
}

func TestRandomJitterBounds(t *testing.T) {
	if got := randomJitter(0); got != 0 {
		t.Fatalf("expected zero jitter for zero bound, got %v", got)
	}
	for i := 0; i < 100; i++ {
		if got := randomJitter(200 * time.Millisecond); got < 0 || got >= 200*time.Millisecond {
			t.Fatalf("jitter out of range: %v", got)
		}
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		status int
		want   bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{599, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusConflict, false},
		{http.StatusOK, false},
	}
	for _, tc := range cases {
		if got := Retryable(tc.status); got != tc.want {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, got)
		}
	}
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}
