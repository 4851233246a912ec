package repository

import (
	"context"
	"time"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists the order and all its line items atomically: either the
	// order row and every item are written, or nothing is.
	Create(ctx context.Context, order model.Order, items []model.OrderItem) (*model.Order, []model.OrderItem, error)
	GetWithItems(ctx context.Context, id string) (*model.Order, []model.OrderItem, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	// MarkPaid transitions the order to paid/processing. The transition is a
	// flat assignment and therefore idempotent.
	MarkPaid(ctx context.Context, orderID string) error
	// ListAwaitingPayment returns orders still pending payment that were
	// created before the cutoff, oldest first.
	ListAwaitingPayment(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error)
}
