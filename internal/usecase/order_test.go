package usecase_test

import (
	"context"
	"errors"
	"github.com/glimmerco/lumiere/internal/usecase"
	"strings"
	"testing"

	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/storage/memory"
	"github.com/glimmerco/lumiere/internal/test"
)

func validShipping() model.ShippingInfo {
	return model.ShippingInfo{
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Duval",
		Address:   "1 Rue de la Paix",
		City:      "Paris",
		State:     "IDF",
		ZipCode:   "75002",
	}
}

func TestValidateShippingReportsEveryMissingField(t *testing.T) {
	err := usecase.ValidateShipping(model.ShippingInfo{Email: "ana@example.com", City: "Paris"})

	ve, ok := domainErrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{"first_name", "last_name", "address", "state", "zip_code"}
	if len(ve.Fields) != len(want) {
		t.Fatalf("expected %d missing fields, got %v", len(want), ve.Fields)
	}
	for i, field := range want {
		if ve.Fields[i] != field {
			t.Fatalf("expected field %q at %d, got %v", field, i, ve.Fields)
		}
	}
}

func TestValidateShippingWhitespaceOnlyIsMissing(t *testing.T) {
	info := validShipping()
	info.State = "   "
	err := usecase.ValidateShipping(info)
	ve, ok := domainErrors.AsValidation(err)
	if !ok || len(ve.Fields) != 1 || ve.Fields[0] != "state" {
		t.Fatalf("expected state to be reported, got %v", err)
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	uc := usecase.NewOrderUseCase(&test.OrderRepositoryStub{}, &test.ProductRepositoryStub{})

	for i := 0; i < 100; i++ {
		number := uc.NewOrderNumber()
		if len(number) != 9 {
			t.Fatalf("unexpected length for %q", number)
		}
		for _, r := range number {
			if !strings.ContainsRune(usecase.OrderNumberAlphabet, r) {
				t.Fatalf("unexpected character %q in %q", r, number)
			}
		}
	}
}

func TestBuildOrderRejectsEmptyCart(t *testing.T) {
	uc := usecase.NewOrderUseCase(&test.OrderRepositoryStub{}, &test.ProductRepositoryStub{})

	if _, _, err := uc.BuildOrder(validShipping(), nil, nil); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestBuildOrderRoundsMoneyAtBoundary(t *testing.T) {
	uc := usecase.NewOrderUseCase(&test.OrderRepositoryStub{}, &test.ProductRepositoryStub{})

	order, items, err := uc.BuildOrder(validShipping(), []model.LineItem{
		{ProductRef: "SKU-1", Name: "Ring", UnitPrice: 850, Quantity: 2},
		{ProductRef: "SKU-2", Name: "Chain", UnitPrice: 120, Quantity: 1},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Subtotal != 1820 {
		t.Fatalf("unexpected subtotal %v", order.Subtotal)
	}
	if order.BundleDiscount != 273 {
		t.Fatalf("unexpected discount %v", order.BundleDiscount)
	}
	if order.Tax != 123.76 {
		t.Fatalf("unexpected tax %v", order.Tax)
	}
	if order.Total != 1670.76 {
		t.Fatalf("unexpected total %v", order.Total)
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("unexpected initial statuses %s/%s", order.Status, order.PaymentStatus)
	}
	if len(items) != 2 || items[0].ProductName != "Ring" || items[1].Quantity != 1 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestResolveItemsUnknownRefStaysNil(t *testing.T) {
	products := &test.ProductRepositoryStub{Resolved: map[string]string{
		"SKU-1": "11111111-1111-1111-1111-111111111111",
	}}
	uc := usecase.NewOrderUseCase(&test.OrderRepositoryStub{}, products)

	lines := []model.LineItem{
		{ProductRef: "SKU-1", Name: "Ring", UnitPrice: 10, Quantity: 1},
		{ProductRef: "shopify_42", Name: "Pendant", UnitPrice: 20, Quantity: 1},
	}
	items := []model.OrderItem{{ProductName: "Ring"}, {ProductName: "Pendant"}}

	if err := uc.ResolveItems(context.Background(), lines, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].ProductID == nil || *items[0].ProductID != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("expected resolved product id, got %v", items[0].ProductID)
	}
	if items[1].ProductID != nil {
		t.Fatalf("expected unknown ref to resolve to nil, got %v", *items[1].ProductID)
	}
}

func TestResolveItemsKeepsCanonicalIDRefs(t *testing.T) {
	store := memory.New()
	ring, err := store.Products().Create(context.Background(), model.Product{Name: "Ring", SKU: "RING-1", Price: 850})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chain, err := store.Products().Create(context.Background(), model.Product{Name: "Chain", SKU: "CHAIN-1", Price: 120})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := usecase.NewOrderUseCase(store.Orders(), store.Products())
	_, items, err := uc.Create(context.Background(), validShipping(), []model.LineItem{
		{ProductRef: ring.ID, Name: "Ring", UnitPrice: 850, Quantity: 1},
		{ProductRef: "CHAIN-1", Name: "Chain", UnitPrice: 120, Quantity: 1},
		{ProductRef: "ebay_77", Name: "Pendant", UnitPrice: 40, Quantity: 1},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if items[0].ProductID == nil || *items[0].ProductID != ring.ID {
		t.Fatalf("expected canonical id ref to be kept, got %v", items[0].ProductID)
	}
	if items[1].ProductID == nil || *items[1].ProductID != chain.ID {
		t.Fatalf("expected sku ref to resolve, got %v", items[1].ProductID)
	}
	if items[2].ProductID != nil {
		t.Fatalf("expected marketplace ref to resolve to nil, got %v", *items[2].ProductID)
	}
}

func TestCreatePersistsOrderWithItems(t *testing.T) {
	orders := &test.OrderRepositoryStub{}
	uc := usecase.NewOrderUseCase(orders, &test.ProductRepositoryStub{})

	order, items, err := uc.Create(context.Background(), validShipping(), []model.LineItem{
		{ProductRef: "SKU-1", Name: "Ring", UnitPrice: 100, Quantity: 1},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "o-1" || len(items) != 1 {
		t.Fatalf("unexpected create result %v %v", order, items)
	}
	if len(orders.Created) != 1 {
		t.Fatalf("expected a single atomic create call, got %d", len(orders.Created))
	}
	if len(orders.Created[0].Items) != 1 {
		t.Fatalf("items not passed with order: %+v", orders.Created[0])
	}
}

func TestCreateValidationFailureSkipsPersistence(t *testing.T) {
	orders := &test.OrderRepositoryStub{}
	uc := usecase.NewOrderUseCase(orders, &test.ProductRepositoryStub{})

	_, _, err := uc.Create(context.Background(), model.ShippingInfo{}, []model.LineItem{
		{Name: "Ring", UnitPrice: 100, Quantity: 1},
	}, nil)
	if _, ok := domainErrors.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(orders.Created) != 0 {
		t.Fatalf("order must not be persisted on validation failure")
	}
}
