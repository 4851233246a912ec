package test

import (
	"context"
	"time"

	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
)

// ProductRepositoryStub allows tests to customize product storage behaviour.
type ProductRepositoryStub struct {
	ListFn        func(context.Context) ([]model.Product, error)
	GetFn         func(context.Context, string) (*model.Product, error)
	CreateFn      func(context.Context, model.Product) (*model.Product, error)
	UpdateFn      func(context.Context, string, model.ProductUpdate) (*model.Product, error)
	DeleteFn      func(context.Context, string) error
	UpsertFn      func(context.Context, []model.Product) (int, error)
	ResolveFn     func(context.Context, []string) (map[string]string, error)
	ReplaceImgFn  func(context.Context, string, []string) error
	CountFn       func(context.Context) (int64, error)
	StoredProduct *model.Product
	Products      []model.Product
	Resolved      map[string]string
	Upserted      [][]model.Product
	Replaced      map[string][]string
}

func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Products, nil
}

func (s *ProductRepositoryStub) Get(ctx context.Context, ref string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, ref)
	}
	if s.StoredProduct != nil {
		return s.StoredProduct, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	product.ID = "p-1"
	return &product, nil
}

func (s *ProductRepositoryStub) Update(ctx context.Context, ref string, update model.ProductUpdate) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, ref, update)
	}
	if s.StoredProduct != nil {
		return s.StoredProduct, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Delete(ctx context.Context, ref string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, ref)
	}
	return nil
}

func (s *ProductRepositoryStub) UpsertBySKU(ctx context.Context, products []model.Product) (int, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, products)
	}
	s.Upserted = append(s.Upserted, products)
	return len(products), nil
}

func (s *ProductRepositoryStub) ResolveSKUs(ctx context.Context, skus []string) (map[string]string, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, skus)
	}
	if s.Resolved == nil {
		return map[string]string{}, nil
	}
	return s.Resolved, nil
}

func (s *ProductRepositoryStub) ReplaceImages(ctx context.Context, id string, images []string) error {
	if s.ReplaceImgFn != nil {
		return s.ReplaceImgFn(ctx, id, images)
	}
	if s.Replaced == nil {
		s.Replaced = make(map[string][]string)
	}
	s.Replaced[id] = images
	return nil
}

func (s *ProductRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx)
	}
	return int64(len(s.Products)), nil
}

// OrderCreateCall captures a persisted order with its items.
type OrderCreateCall struct {
	Order model.Order
	Items []model.OrderItem
}

// OrderRepositoryStub allows tests to customize order storage behaviour.
type OrderRepositoryStub struct {
	CreateFn      func(context.Context, model.Order, []model.OrderItem) (*model.Order, []model.OrderItem, error)
	GetFn         func(context.Context, string) (*model.Order, []model.OrderItem, error)
	GetByIntentFn func(context.Context, string) (*model.Order, error)
	ListFn        func(context.Context) ([]model.Order, error)
	MarkPaidFn    func(context.Context, string) error
	AwaitingFn    func(context.Context, time.Time, int) ([]model.Order, error)

	Created   []OrderCreateCall
	Orders    []model.Order
	MarkCalls []string
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order, items []model.OrderItem) (*model.Order, []model.OrderItem, error) {
	s.Created = append(s.Created, OrderCreateCall{Order: order, Items: items})
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, items)
	}
	order.ID = "o-1"
	return &order, items, nil
}

func (s *OrderRepositoryStub) GetWithItems(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil, nil
		}
	}
	return nil, nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) GetByPaymentIntent(ctx context.Context, intentID string) (*model.Order, error) {
	if s.GetByIntentFn != nil {
		return s.GetByIntentFn(ctx, intentID)
	}
	for _, o := range s.Orders {
		if o.PaymentIntentID != nil && *o.PaymentIntentID == intentID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, orderID string) error {
	s.MarkCalls = append(s.MarkCalls, orderID)
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID)
	}
	return nil
}

func (s *OrderRepositoryStub) ListAwaitingPayment(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	if s.AwaitingFn != nil {
		return s.AwaitingFn(ctx, createdBefore, limit)
	}
	return nil, nil
}

// IntegrationRepositoryStub stores integration rows in-memory for tests.
type IntegrationRepositoryStub struct {
	GetFn    func(context.Context, string) (*model.Integration, error)
	UpsertFn func(context.Context, model.Integration) (*model.Integration, error)
	Rows     map[string]model.Integration
}

func NewIntegrationRepositoryStub() *IntegrationRepositoryStub {
	return &IntegrationRepositoryStub{Rows: make(map[string]model.Integration)}
}

func (s *IntegrationRepositoryStub) Get(ctx context.Context, service string) (*model.Integration, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, service)
	}
	if row, ok := s.Rows[service]; ok {
		return &row, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *IntegrationRepositoryStub) Upsert(ctx context.Context, integration model.Integration) (*model.Integration, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, integration)
	}
	if s.Rows == nil {
		s.Rows = make(map[string]model.Integration)
	}
	integration.UpdatedAt = time.Now()
	s.Rows[integration.Service] = integration
	return &integration, nil
}
