package repository

import (
	"context"
	"time"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// QuoteRepository persists priced drafts keyed by confirmation token.
// Implementations must not cache: every call crosses the storage boundary.
type QuoteRepository interface {
	Put(ctx context.Context, quote *model.Quote) error
	// Get returns errors.ErrNotFound when the token is unknown.
	Get(ctx context.Context, token string) (*model.Quote, error)
	// Take atomically reads and deletes the quote so only one caller can consume it.
	Take(ctx context.Context, token string) (*model.Quote, error)
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes quotes created before the cutoff and reports how many were removed.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
	Ping(ctx context.Context) error
}
