package usecase

import (
	"context"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// OrderUseCase encapsulates order creation and retrieval.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository

	randInt func(n int) int
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, randInt: rand.Intn}
}

// NewOrderNumber returns a 9 character upper-case base36 order number.
func (u *OrderUseCase) NewOrderNumber() string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteByte(orderNumberAlphabet[u.randInt(len(orderNumberAlphabet))])
	}
	return b.String()
}

// ValidateShipping checks every shipping field and reports all missing ones
// at once.
func ValidateShipping(info model.ShippingInfo) error {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"email", info.Email},
		{"first_name", info.FirstName},
		{"last_name", info.LastName},
		{"address", info.Address},
		{"city", info.City},
		{"state", info.State},
		{"zip_code", info.ZipCode},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return domainErrors.NewValidationError(missing...)
	}
	return nil
}

// BuildOrder assembles an unsaved order from cart lines and shipping info.
// Money figures are rounded to cents at this boundary.
func (u *OrderUseCase) BuildOrder(info model.ShippingInfo, items []model.LineItem, intentID *string) (model.Order, []model.OrderItem, error) {
	if err := ValidateShipping(info); err != nil {
		return model.Order{}, nil, err
	}
	if len(items) == 0 {
		return model.Order{}, nil, domainErrors.ErrEmptyCart
	}

	totals := Rounded(ComputeTotals(items))

	order := model.Order{
		Number:          u.NewOrderNumber(),
		Email:           info.Email,
		FirstName:       info.FirstName,
		LastName:        info.LastName,
		Address:         info.Address,
		City:            info.City,
		State:           info.State,
		ZipCode:         info.ZipCode,
		Subtotal:        totals.Subtotal,
		BundleDiscount:  totals.BundleDiscount,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentIntentID: intentID,
	}

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ProductName:  item.Name,
			ProductPrice: Round2(item.UnitPrice),
			Quantity:     item.Quantity,
		}
	}
	return order, orderItems, nil
}

// ResolveItems maps cart product references to canonical product ids.
// References that already carry a canonical id are kept as-is; only the
// remaining ones are looked up by SKU. Unknown references resolve to nil
// so marketplace items keep their snapshot.
func (u *OrderUseCase) ResolveItems(ctx context.Context, items []model.LineItem, orderItems []model.OrderItem) error {
	refs := make([]string, 0, len(items))
	for i, item := range items {
		if item.ProductRef == "" {
			continue
		}
		if _, err := uuid.Parse(item.ProductRef); err == nil {
			v := item.ProductRef
			orderItems[i].ProductID = &v
			continue
		}
		refs = append(refs, item.ProductRef)
	}

	resolved, err := u.products.ResolveSKUs(ctx, refs)
	if err != nil {
		return err
	}

	for i, item := range items {
		if orderItems[i].ProductID != nil {
			continue
		}
		if id, ok := resolved[item.ProductRef]; ok {
			v := id
			orderItems[i].ProductID = &v
		}
	}
	return nil
}

// Create persists an order together with its items atomically.
func (u *OrderUseCase) Create(ctx context.Context, info model.ShippingInfo, items []model.LineItem, intentID *string) (*model.Order, []model.OrderItem, error) {
	order, orderItems, err := u.BuildOrder(info, items, intentID)
	if err != nil {
		return nil, nil, err
	}
	if err := u.ResolveItems(ctx, items, orderItems); err != nil {
		return nil, nil, err
	}
	return u.orders.Create(ctx, order, orderItems)
}

// GetWithItems returns a stored order with its line items.
func (u *OrderUseCase) GetWithItems(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	return u.orders.GetWithItems(ctx, id)
}

// List returns every order, newest first.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}
