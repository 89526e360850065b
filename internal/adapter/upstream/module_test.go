package upstream

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/orderrelay/internal/config"
	"github.com/polkiloo/orderrelay/internal/metrics"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{UpstreamBaseURL: "http://example.com", UpstreamTimeout: time.Second}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger, Metrics: metrics.NewRegistry()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
