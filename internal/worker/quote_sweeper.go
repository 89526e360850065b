package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// QuotePurger exposes the subset of application functionality required by the sweeper.
type QuotePurger interface {
	PurgeExpiredQuotes(ctx context.Context) (int64, error)
}

// QuoteSweeper periodically removes quotes that outlived their confirmation window.
// Backends with native expiry report zero purged rows.
type QuoteSweeper struct {
	purger   QuotePurger
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewQuoteSweeper constructs the sweeper.
func NewQuoteSweeper(purger QuotePurger, interval time.Duration, logger *slog.Logger) *QuoteSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &QuoteSweeper{
		purger:   purger,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background sweeping. Calling Start on a running sweeper is a no-op.
func (s *QuoteSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the current sweep to finish.
func (s *QuoteSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *QuoteSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *QuoteSweeper) sweep(ctx context.Context) {
	n, err := s.purger.PurgeExpiredQuotes(ctx)
	if err != nil {
		s.logger.Error("purge expired quotes failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		s.logger.Info("purged expired quotes", slog.Int64("count", n))
	}
}
