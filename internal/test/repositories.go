package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// QuoteRepositoryStub stores quotes in-memory for tests.
type QuoteRepositoryStub struct {
	Quotes map[string]*model.Quote
	Err    error

	PutCalls    int
	GetCalls    int
	TakeCalls   int
	DeleteCalls int
	PurgeCalls  int

	mu sync.Mutex
}

// NewQuoteRepositoryStub constructs stub repository with initialized map.
func NewQuoteRepositoryStub() *QuoteRepositoryStub {
	return &QuoteRepositoryStub{Quotes: make(map[string]*model.Quote)}
}

// Put stores quote under its token.
func (s *QuoteRepositoryStub) Put(ctx context.Context, q *model.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PutCalls++
	if s.Err != nil {
		return s.Err
	}
	if s.Quotes == nil {
		s.Quotes = make(map[string]*model.Quote)
	}
	cp := *q
	s.Quotes[q.Token] = &cp
	return nil
}

// Get returns stored quote or not found.
func (s *QuoteRepositoryStub) Get(ctx context.Context, token string) (*model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	q, ok := s.Quotes[token]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

// Take removes and returns stored quote.
func (s *QuoteRepositoryStub) Take(ctx context.Context, token string) (*model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TakeCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	q, ok := s.Quotes[token]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	delete(s.Quotes, token)
	return q, nil
}

// Delete removes quote if present.
func (s *QuoteRepositoryStub) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	if s.Err != nil {
		return s.Err
	}
	delete(s.Quotes, token)
	return nil
}

// PurgeExpired drops quotes created before the cutoff.
func (s *QuoteRepositoryStub) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PurgeCalls++
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for token, q := range s.Quotes {
		if q.CreatedAt.Before(before) {
			delete(s.Quotes, token)
			n++
		}
	}
	return n, nil
}

// Ping reports configured error.
func (s *QuoteRepositoryStub) Ping(ctx context.Context) error {
	return s.Err
}

// Len returns number of stored quotes.
func (s *QuoteRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Quotes)
}
