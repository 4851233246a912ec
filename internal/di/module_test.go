package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/glimmerco/lumiere/internal/app"
	"github.com/glimmerco/lumiere/internal/config"
	"github.com/glimmerco/lumiere/internal/domain/repository"
	"github.com/glimmerco/lumiere/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		UploadDir:          t.TempDir(),
		AdminSessionSecret: "secret",
		Currency:           "usd",
		ReconcileInterval:  time.Millisecond,
		ReconcileBatchSize: 1,
		ReconcileMinAge:    time.Minute,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	products := &test.ProductRepositoryStub{}
	orders := &test.OrderRepositoryStub{}
	integrations := test.NewIntegrationRepositoryStub()

	var facade *app.StorefrontFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(repository.ProductRepository(products)),
			fx.Replace(repository.OrderRepository(orders)),
			fx.Replace(repository.IntegrationRepository(integrations)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected storefront facade instance")
	}
}
