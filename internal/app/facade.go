package app

import (
	"context"

	"github.com/polkiloo/orderrelay/internal/domain/model"
	"github.com/polkiloo/orderrelay/internal/domain/repository"
	"github.com/polkiloo/orderrelay/internal/usecase"
)

// OrderRelayFacade is the single entry point used by HTTP handlers and background workers.
type OrderRelayFacade struct {
	orders *usecase.OrderUseCase
	menu   *usecase.MenuUseCase
	quotes repository.QuoteRepository
}

func NewOrderRelayFacade(orders *usecase.OrderUseCase, menu *usecase.MenuUseCase, quotes repository.QuoteRepository) *OrderRelayFacade {
	return &OrderRelayFacade{orders: orders, menu: menu, quotes: quotes}
}

func (f *OrderRelayFacade) Quote(ctx context.Context, in model.QuoteInput) (*model.QuoteOutcome, error) {
	return f.orders.Quote(ctx, in)
}

func (f *OrderRelayFacade) Place(ctx context.Context, token string, confirm any) (*model.PlacementOutcome, error) {
	return f.orders.Place(ctx, token, confirm)
}

func (f *OrderRelayFacade) DescribeQuote(ctx context.Context, token string) (*model.QuoteView, error) {
	return f.orders.Describe(ctx, token)
}

func (f *OrderRelayFacade) CancelQuote(ctx context.Context, token string) error {
	return f.orders.Cancel(ctx, token)
}

func (f *OrderRelayFacade) Menu(ctx context.Context, storeID, search string) (*model.MenuResult, error) {
	return f.menu.Menu(ctx, storeID, search)
}

// Health reports whether the quote store is reachable.
func (f *OrderRelayFacade) Health(ctx context.Context) error {
	return f.quotes.Ping(ctx)
}

func (f *OrderRelayFacade) PurgeExpiredQuotes(ctx context.Context) (int64, error) {
	return f.orders.PurgeExpired(ctx)
}
