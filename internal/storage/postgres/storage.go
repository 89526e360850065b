package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
	"github.com/polkiloo/orderrelay/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps pending quotes in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type quoteRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Quotes returns the quote repository.
func (s *Storage) Quotes() repository.QuoteRepository {
	return &quoteRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
            quote_key TEXT PRIMARY KEY,
            token TEXT NOT NULL,
            store_id TEXT NOT NULL,
            service_method TEXT NOT NULL,
            store_hint JSONB NOT NULL,
            priced_draft JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_created ON quotes(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

const quoteColumns = `token, store_id, service_method, store_hint, priced_draft, created_at`

func (r *quoteRepository) Put(ctx context.Context, q *model.Quote) error {
	hint, err := json.Marshal(q.StoreHint)
	if err != nil {
		return fmt.Errorf("encode store hint: %w", err)
	}
	draft := []byte(q.PricedDraft)
	if len(draft) == 0 {
		draft = []byte("null")
	}

	const query = `INSERT INTO quotes (quote_key, ` + quoteColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.storage.pool.Exec(ctx, query,
		model.QuoteKey(q.Token), q.Token, q.StoreID, string(q.ServiceMethod), hint, draft, q.CreatedAt)
	return err
}

func (r *quoteRepository) Get(ctx context.Context, token string) (*model.Quote, error) {
	const query = `SELECT ` + quoteColumns + ` FROM quotes WHERE quote_key=$1`
	return scanQuote(r.storage.pool.QueryRow(ctx, query, model.QuoteKey(token)))
}

// Take deletes and returns the quote in one statement, so concurrent callers cannot both
// observe it.
func (r *quoteRepository) Take(ctx context.Context, token string) (*model.Quote, error) {
	const query = `DELETE FROM quotes WHERE quote_key=$1 RETURNING ` + quoteColumns
	return scanQuote(r.storage.pool.QueryRow(ctx, query, model.QuoteKey(token)))
}

func (r *quoteRepository) Delete(ctx context.Context, token string) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM quotes WHERE quote_key=$1`, model.QuoteKey(token))
	return err
}

func (r *quoteRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM quotes WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *quoteRepository) Ping(ctx context.Context) error {
	return r.storage.HealthCheck(ctx)
}

func scanQuote(row pgx.Row) (*model.Quote, error) {
	var (
		q      model.Quote
		method string
		hint   []byte
		draft  []byte
	)
	if err := row.Scan(&q.Token, &q.StoreID, &method, &hint, &draft, &q.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(hint, &q.StoreHint); err != nil {
		return nil, fmt.Errorf("decode store hint: %w", err)
	}
	q.ServiceMethod = model.ServiceMethod(method)
	q.PricedDraft = json.RawMessage(draft)
	return &q, nil
}
