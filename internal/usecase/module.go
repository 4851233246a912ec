package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	"github.com/glimmerco/lumiere/internal/config"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewOrderUseCase,
	newPaymentUseCase,
	NewIntegrationUseCase,
	NewCatalogUseCase,
	NewProductUseCase,
)

type paymentParams struct {
	fx.In

	Orders  repository.OrderRepository
	OrderUC *OrderUseCase
	Stripe  stripe.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Orders, p.OrderUC, p.Stripe, p.Config.StripeWebhookSecret, p.Config.Currency, p.Logger)
}
