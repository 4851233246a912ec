package ai

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes the description generator to the fx graph.
var Module = fx.Provide(func(logger *slog.Logger) Generator {
	return NewHTTPGenerator(logger)
})
