package shopify

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes the Shopify feed client to the fx graph.
var Module = fx.Provide(func(logger *slog.Logger) Client {
	return NewHTTPClient(logger)
})
