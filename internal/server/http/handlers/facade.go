package handlers

import (
	"context"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// QuoteFacade covers the quote and placement actions.
type QuoteFacade interface {
	Quote(ctx context.Context, in model.QuoteInput) (*model.QuoteOutcome, error)
	Place(ctx context.Context, token string, confirm any) (*model.PlacementOutcome, error)
	DescribeQuote(ctx context.Context, token string) (*model.QuoteView, error)
	CancelQuote(ctx context.Context, token string) error
}

// MenuFacade serves menu lookups.
type MenuFacade interface {
	Menu(ctx context.Context, storeID, search string) (*model.MenuResult, error)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// OrderRelayFacade aggregates the full set of operations used across handlers.
type OrderRelayFacade interface {
	QuoteFacade
	MenuFacade
	HealthFacade
}
