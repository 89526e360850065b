package test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/polkiloo/orderrelay/internal/domain/model"
	pkgAuth "github.com/polkiloo/orderrelay/internal/pkg/auth"
)

// OrderRelayFacadeStub provides controllable behaviour for every HTTP endpoint.
type OrderRelayFacadeStub struct {
	QuoteFn    func(context.Context, model.QuoteInput) (*model.QuoteOutcome, error)
	PlaceFn    func(context.Context, string, any) (*model.PlacementOutcome, error)
	DescribeFn func(context.Context, string) (*model.QuoteView, error)
	CancelFn   func(context.Context, string) error
	MenuFn     func(context.Context, string, string) (*model.MenuResult, error)
	HealthFn   func(context.Context) error
}

// Quote delegates to QuoteFn or returns an accepted quote.
func (s OrderRelayFacadeStub) Quote(ctx context.Context, in model.QuoteInput) (*model.QuoteOutcome, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, in)
	}
	return &model.QuoteOutcome{
		OK:      true,
		State:   model.StateQuoted,
		Token:   "token",
		Summary: &model.QuoteSummary{StoreID: "123", ServiceMethod: "Delivery", Items: []model.SummaryItem{}},
		Store:   &model.StoreHint{ID: "123"},
	}, nil
}

// Place delegates to PlaceFn or reports a placed order.
func (s OrderRelayFacadeStub) Place(ctx context.Context, token string, confirm any) (*model.PlacementOutcome, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, token, confirm)
	}
	return &model.PlacementOutcome{
		OK:      true,
		State:   model.StatePlaced,
		Token:   token,
		Summary: model.QuoteSummary{Items: []model.SummaryItem{}},
		Result:  json.RawMessage(`{"Status":0}`),
	}, nil
}

// DescribeQuote delegates to DescribeFn or returns a fresh quote view.
func (s OrderRelayFacadeStub) DescribeQuote(ctx context.Context, token string) (*model.QuoteView, error) {
	if s.DescribeFn != nil {
		return s.DescribeFn(ctx, token)
	}
	return &model.QuoteView{
		Token:     token,
		Summary:   model.QuoteSummary{Items: []model.SummaryItem{}},
		Store:     model.StoreHint{ID: "123"},
		ExpiresAt: time.Unix(0, 0).UTC(),
	}, nil
}

// CancelQuote delegates to CancelFn.
func (s OrderRelayFacadeStub) CancelQuote(ctx context.Context, token string) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, token)
	}
	return nil
}

// Menu delegates to MenuFn or returns an empty menu.
func (s OrderRelayFacadeStub) Menu(ctx context.Context, storeID, search string) (*model.MenuResult, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx, storeID, search)
	}
	return &model.MenuResult{StoreID: storeID, Search: search, Products: []model.ProductSummary{}}, nil
}

// Health delegates to HealthFn.
func (s OrderRelayFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// KeyVerifierStub accepts exactly Key. An empty Key disables verification.
type KeyVerifierStub struct {
	Key string
	Err error
}

// Enabled reports whether a key is configured.
func (s KeyVerifierStub) Enabled() bool {
	return s.Key != ""
}

// Verify compares the presented key with Key.
func (s KeyVerifierStub) Verify(key string) error {
	if s.Err != nil {
		return s.Err
	}
	if key == "" {
		return pkgAuth.ErrMissingAPIKey
	}
	if key != s.Key {
		return pkgAuth.ErrInvalidAPIKey
	}
	return nil
}
