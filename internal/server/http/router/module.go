package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/app"
	"github.com/polkiloo/orderrelay/internal/metrics"
	"github.com/polkiloo/orderrelay/internal/pkg/auth"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

type routerParams struct {
	fx.In

	Facade   *app.OrderRelayFacade
	Verifier *auth.KeyVerifier
	Metrics  *metrics.Registry
	Logger   *slog.Logger
}

func newEngine(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Verifier, p.Metrics, p.Logger)
}
