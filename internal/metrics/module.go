package metrics

import "go.uber.org/fx"

// Module provides the shared metrics registry.
var Module = fx.Provide(NewRegistry)
