package upstream

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderrelay/internal/config"
	"github.com/polkiloo/orderrelay/internal/metrics"
)

// Module exposes upstream client implementation to fx graph.
var Module = fx.Provide(newClient, NewAPI)

type clientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Registry
}

func newClient(p clientParams) (Caller, error) {
	return NewHTTPClient(p.Config.UpstreamBaseURL, p.Config.UpstreamTimeout, p.Logger, p.Metrics)
}
