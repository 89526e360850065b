package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/config"
	"github.com/polkiloo/orderrelay/internal/domain/repository"
	"github.com/polkiloo/orderrelay/internal/storage/postgres"
	"github.com/polkiloo/orderrelay/internal/storage/redisstore"
)

// Module provides the quote repository selected by configuration.
var Module = fx.Provide(newQuoteRepository)

type storageParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newQuoteRepository(p storageParams) (repository.QuoteRepository, error) {
	switch p.Config.QuoteStore {
	case config.QuoteStorePostgres:
		st, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		postgres.RegisterLifecycle(p.Lifecycle, st)
		return st.Quotes(), nil
	case config.QuoteStoreRedis:
		st, err := redisstore.New(p.Ctx, redisstore.Options{
			Addr:     p.Config.RedisAddr,
			Password: p.Config.RedisPassword,
			DB:       p.Config.RedisDB,
		}, p.Logger)
		if err != nil {
			return nil, err
		}
		redisstore.RegisterLifecycle(p.Lifecycle, st)
		return st.Quotes(), nil
	default:
		return nil, fmt.Errorf("unknown quote store %q", p.Config.QuoteStore)
	}
}
