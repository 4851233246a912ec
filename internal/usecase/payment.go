package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

// CheckoutResult is what the storefront needs to drive client-side payment.
type CheckoutResult struct {
	Order        *model.Order
	Items        []model.OrderItem
	ClientSecret string
}

// PaymentUseCase orchestrates checkout sessions and webhook settlement.
type PaymentUseCase struct {
	orders        repository.OrderRepository
	orderUC       *OrderUseCase
	stripe        stripe.Client
	webhookSecret string
	currency      string
	logger        *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	orderUC *OrderUseCase,
	client stripe.Client,
	webhookSecret string,
	currency string,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:        orders,
		orderUC:       orderUC,
		stripe:        client,
		webhookSecret: webhookSecret,
		currency:      currency,
		logger:        logger,
	}
}

// StartCheckout creates a payment intent for the cart total and then
// persists the order referencing it. The intent exists before the order so a
// stored order always carries its payment reference.
func (u *PaymentUseCase) StartCheckout(ctx context.Context, info model.ShippingInfo, items []model.LineItem) (*CheckoutResult, error) {
	if !u.stripe.Configured() {
		return nil, stripe.ErrNotConfigured
	}

	order, orderItems, err := u.orderUC.BuildOrder(info, items, nil)
	if err != nil {
		return nil, err
	}

	intent, err := u.stripe.CreatePaymentIntent(ctx, AmountInCents(order.Total), u.currency)
	if err != nil {
		return nil, err
	}

	order.PaymentIntentID = &intent.ID
	if err := u.orderUC.ResolveItems(ctx, items, orderItems); err != nil {
		return nil, err
	}

	saved, savedItems, err := u.orders.Create(ctx, order, orderItems)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{Order: saved, Items: savedItems, ClientSecret: intent.ClientSecret}, nil
}

// HandleWebhook verifies the processor signature and applies the settlement.
// Events that cannot be matched to an order are acknowledged and dropped so
// the processor does not retry them forever.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := stripe.ConstructEvent(payload, signature, u.webhookSecret)
	if err != nil {
		return err
	}

	switch event.Type {
	case stripe.EventPaymentSucceeded:
		intentID := event.PaymentIntentID()
		if intentID == "" {
			u.logger.Error("webhook payload missing intent id", "event", event.ID)
			return nil
		}
		return u.settle(ctx, intentID)
	default:
		u.logger.Info("unhandled webhook event", "type", event.Type, "event", event.ID)
		return nil
	}
}

// settle marks the matching order paid. Repeated deliveries land on the same
// terminal state.
func (u *PaymentUseCase) settle(ctx context.Context, intentID string) error {
	order, err := u.orders.GetByPaymentIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Warn("no order for payment intent", "intent_id", intentID)
			return nil
		}
		return err
	}

	if order.PaymentStatus == model.PaymentStatusPaid {
		return nil
	}

	if err := u.orders.MarkPaid(ctx, order.ID); err != nil {
		return err
	}
	u.logger.Info("order paid", "order_id", order.ID, "number", order.Number)
	return nil
}

// CheckIntent re-reads the processor state for a stored intent and settles
// the order when the intent already succeeded. Used by the reconciliation
// sweep for webhooks that never arrived.
func (u *PaymentUseCase) CheckIntent(ctx context.Context, intentID string) error {
	intent, err := u.stripe.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if !intent.Succeeded() {
		return nil
	}
	return u.settle(ctx, intentID)
}

// Configured reports whether the payment processor is usable.
func (u *PaymentUseCase) Configured() bool {
	return u.stripe.Configured()
}
