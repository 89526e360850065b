package redisstore

import (
	"context"

	"go.uber.org/fx"
)

// RegisterLifecycle closes the client when the application stops.
func RegisterLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return storage.Close()
		},
	})
}
