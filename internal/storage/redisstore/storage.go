package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
	"github.com/polkiloo/orderrelay/internal/domain/repository"
)

// Storage keeps pending quotes in Redis with a native expiry of model.QuoteTTL.
type Storage struct {
	client *redis.Client
	logger *slog.Logger
}

type quoteRepository struct {
	storage *Storage
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		Protocol:        2,
		DisableIdentity: true,
	})
	storage := NewWithClient(client, logger)
	if err := storage.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return storage, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, logger *slog.Logger) *Storage {
	return &Storage{client: client, logger: logger}
}

// Close releases the client.
func (s *Storage) Close() error {
	return s.client.Close()
}

// Quotes returns the quote repository.
func (s *Storage) Quotes() repository.QuoteRepository {
	return &quoteRepository{storage: s}
}

// HealthCheck pings the server.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func (r *quoteRepository) Put(ctx context.Context, q *model.Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	return r.storage.client.Set(ctx, model.QuoteKey(q.Token), data, model.QuoteTTL).Err()
}

func (r *quoteRepository) Get(ctx context.Context, token string) (*model.Quote, error) {
	data, err := r.storage.client.Get(ctx, model.QuoteKey(token)).Bytes()
	return decodeQuote(data, err)
}

// Take uses GETDEL so a quote is handed to exactly one caller.
func (r *quoteRepository) Take(ctx context.Context, token string) (*model.Quote, error) {
	data, err := r.storage.client.GetDel(ctx, model.QuoteKey(token)).Bytes()
	return decodeQuote(data, err)
}

func (r *quoteRepository) Delete(ctx context.Context, token string) error {
	return r.storage.client.Del(ctx, model.QuoteKey(token)).Err()
}

// PurgeExpired is a no-op; keys carry their own expiry.
func (r *quoteRepository) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *quoteRepository) Ping(ctx context.Context) error {
	return r.storage.HealthCheck(ctx)
}

func decodeQuote(data []byte, err error) (*model.Quote, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var q model.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return &q, nil
}
