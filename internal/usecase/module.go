package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/adapter/upstream"
	"github.com/polkiloo/orderrelay/internal/domain/repository"
	"github.com/polkiloo/orderrelay/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	func(api *upstream.API) StoreLocator { return api },
	func(api *upstream.API) OrderGateway { return api },
	func(api *upstream.API) MenuSource { return api },
	NewStoreResolver,
	NewMenuUseCase,
	newOrderUseCase,
)

type orderParams struct {
	fx.In

	Gateway OrderGateway
	Stores  *StoreResolver
	Quotes  repository.QuoteRepository
	Logger  *slog.Logger
	Metrics *metrics.Registry
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Gateway, p.Stores, p.Quotes, p.Logger, p.Metrics)
}
