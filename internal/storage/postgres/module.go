package postgres

import (
	"context"

	"go.uber.org/fx"
)

// RegisterLifecycle closes the pool when the application stops.
func RegisterLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
