package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/orderrelay/internal/config"
	"github.com/polkiloo/orderrelay/internal/domain/model"
)

func testParams(t *testing.T, cfg *config.Config) (storageParams, *fxtest.Lifecycle) {
	lc := fxtest.NewLifecycle(t)
	return storageParams{
		Ctx:       context.Background(),
		Config:    cfg,
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Lifecycle: lc,
	}, lc
}

func TestNewQuoteRepositoryRedis(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer server.Close()

	p, lc := testParams(t, &config.Config{QuoteStore: config.QuoteStoreRedis, RedisAddr: server.Addr()})
	repo, err := newQuoteRepository(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lc.RequireStart()

	if err := repo.Put(context.Background(), &model.Quote{Token: "t", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !server.Exists("quote:t") {
		t.Fatal("expected quote stored in redis")
	}
	lc.RequireStop()
}

func TestNewQuoteRepositoryErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{name: "unknown", cfg: &config.Config{QuoteStore: "memcached"}, want: "unknown quote store"},
		{name: "bad dsn", cfg: &config.Config{QuoteStore: config.QuoteStorePostgres, DatabaseURI: ":://bad"}, want: "parse dsn"},
		{name: "redis down", cfg: &config.Config{QuoteStore: config.QuoteStoreRedis, RedisAddr: "127.0.0.1:1"}, want: "connect redis"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := testParams(t, tc.cfg)
			if _, err := newQuoteRepository(p); err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
