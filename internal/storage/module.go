package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/glimmerco/lumiere/internal/config"
	"github.com/glimmerco/lumiere/internal/domain/repository"
	"github.com/glimmerco/lumiere/internal/storage/memory"
	"github.com/glimmerco/lumiere/internal/storage/postgres"
)

// Module wires the repository factory and its adapters. PostgreSQL backs the
// store when DATABASE_URI is set, otherwise an in-memory store is used.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(newFactory),
		fx.Provide(
			func(f repository.Factory) repository.ProductRepository { return f.Products() },
			func(f repository.Factory) repository.OrderRepository { return f.Orders() },
			func(f repository.Factory) repository.IntegrationRepository { return f.Integrations() },
		),
	)
}

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams, lc fx.Lifecycle) (repository.Factory, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("no database configured, using in-memory storage")
		return memory.New(), nil
	}

	storage, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})

	return storage, nil
}
