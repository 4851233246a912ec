package ebay

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes the eBay feed client to the fx graph.
var Module = fx.Provide(func(logger *slog.Logger) Client {
	return NewHTTPClient(logger)
})
