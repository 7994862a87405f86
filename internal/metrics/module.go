package metrics

import "go.uber.org/fx"

// Module provides the metrics set via fx.
var Module = fx.Provide(New)
