package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/adapter/upstream"
	"github.com/polkiloo/orderrelay/internal/app"
	"github.com/polkiloo/orderrelay/internal/config"
	"github.com/polkiloo/orderrelay/internal/logger"
	"github.com/polkiloo/orderrelay/internal/metrics"
	"github.com/polkiloo/orderrelay/internal/pkg/auth"
	"github.com/polkiloo/orderrelay/internal/server/http/router"
	"github.com/polkiloo/orderrelay/internal/storage"
	"github.com/polkiloo/orderrelay/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		upstream.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
