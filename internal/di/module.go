package di

import (
	"go.uber.org/fx"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/ebay"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	"github.com/glimmerco/lumiere/internal/app"
	"github.com/glimmerco/lumiere/internal/config"
	"github.com/glimmerco/lumiere/internal/logger"
	"github.com/glimmerco/lumiere/internal/pkg/auth"
	"github.com/glimmerco/lumiere/internal/server/http/router"
	"github.com/glimmerco/lumiere/internal/storage"
	"github.com/glimmerco/lumiere/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module(),
		stripe.Module,
		shopify.Module,
		ebay.Module,
		ai.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
