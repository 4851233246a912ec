package test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/usecase"
)

// CatalogFacadeStub provides controllable behaviour for the public catalog
// endpoints.
type CatalogFacadeStub struct {
	ProductsFn        func(context.Context) ([]model.Product, error)
	ProductFn         func(context.Context, string) (*model.Product, error)
	ShopifyOn         bool
	ShopifyProductsFn func(context.Context) ([]model.Product, error)
	EbayOn            bool
	EbayProductsFn    func(context.Context, string) ([]model.Product, error)
}

func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: "p-1", Name: "Gold Ring", Price: 120}}, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, ref string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, ref)
	}
	return &model.Product{ID: ref}, nil
}

func (s CatalogFacadeStub) ShopifyConfigured(context.Context) bool { return s.ShopifyOn }

func (s CatalogFacadeStub) ShopifyProducts(ctx context.Context) ([]model.Product, error) {
	if s.ShopifyProductsFn != nil {
		return s.ShopifyProductsFn(ctx)
	}
	return nil, nil
}

func (s CatalogFacadeStub) EbayConfigured(context.Context) bool { return s.EbayOn }

func (s CatalogFacadeStub) EbayProducts(ctx context.Context, query string) ([]model.Product, error) {
	if s.EbayProductsFn != nil {
		return s.EbayProductsFn(ctx, query)
	}
	return nil, nil
}

// CheckoutFacadeStub simulates order placement and payment settlement.
type CheckoutFacadeStub struct {
	CheckoutFn     func(context.Context, model.ShippingInfo, []model.LineItem) (*usecase.CheckoutResult, error)
	OrderFn        func(context.Context, string) (*model.Order, []model.OrderItem, error)
	IntentFn       func(context.Context, int64, string) (string, error)
	PaymentOn      bool
	WebhookOn      bool
	PublishableVal string
	WebhookFn      func(context.Context, []byte, string) error
}

func (s CheckoutFacadeStub) Checkout(ctx context.Context, info model.ShippingInfo, items []model.LineItem) (*usecase.CheckoutResult, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, info, items)
	}
	return &usecase.CheckoutResult{Order: &model.Order{ID: "o-1", Number: "A1B2C3D4E"}, ClientSecret: "pi_secret"}, nil
}

func (s CheckoutFacadeStub) Order(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Number: "A1B2C3D4E"}, nil, nil
}

func (s CheckoutFacadeStub) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if s.IntentFn != nil {
		return s.IntentFn(ctx, amount, currency)
	}
	return "pi_secret", nil
}

func (s CheckoutFacadeStub) PaymentConfigured() bool { return s.PaymentOn }
func (s CheckoutFacadeStub) WebhookConfigured() bool { return s.WebhookOn }
func (s CheckoutFacadeStub) PublishableKey() string { return s.PublishableVal }

func (s CheckoutFacadeStub) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, payload, signature)
	}
	return nil
}

// AdminFacadeStub covers the admin console surface.
type AdminFacadeStub struct {
	LoginFn      func(string) (string, error)
	SessionErr   error
	APIToken     string
	GenerateFn   func(context.Context, string, ai.GenerateOptions) (string, error)
	Integrations map[string]*model.Integration
}

func (s AdminFacadeStub) Login(password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(password)
	}
	return "session-token", nil
}

func (s AdminFacadeStub) VerifySession(string) error { return s.SessionErr }

func (s AdminFacadeStub) VerifyAPIToken(token string) bool {
	return s.APIToken != "" && token == s.APIToken
}

func (s AdminFacadeStub) AdminProducts(context.Context) ([]model.Product, error) {
	return nil, nil
}

func (s AdminFacadeStub) AdminProduct(_ context.Context, ref string) (*model.Product, error) {
	return &model.Product{ID: ref}, nil
}

func (s AdminFacadeStub) CreateProduct(_ context.Context, product model.Product) (*model.Product, error) {
	product.ID = "p-1"
	return &product, nil
}

func (s AdminFacadeStub) UpdateProduct(_ context.Context, ref string, _ model.ProductUpdate) (*model.Product, error) {
	return &model.Product{ID: ref}, nil
}

func (s AdminFacadeStub) DeleteProduct(context.Context, string) error { return nil }

func (s AdminFacadeStub) ImportProductsCSV(context.Context, io.Reader) (*usecase.ImportResult, error) {
	return &usecase.ImportResult{}, nil
}

func (s AdminFacadeStub) MatchProductImages(_ context.Context, uploads []usecase.UploadedImage) (*usecase.MatchResult, error) {
	return &usecase.MatchResult{Uploaded: len(uploads)}, nil
}

func (s AdminFacadeStub) GenerateDescription(ctx context.Context, ref string, opts ai.GenerateOptions) (string, error) {
	if s.GenerateFn != nil {
		return s.GenerateFn(ctx, ref, opts)
	}
	return "generated", nil
}

func (s AdminFacadeStub) SyncShopify(context.Context) (int, error) { return 0, nil }

func (s AdminFacadeStub) PushToShopify(_ context.Context, ref string) (*shopify.CreatedProduct, error) {
	return &shopify.CreatedProduct{ID: 1, Title: ref}, nil
}

func (s AdminFacadeStub) ProductCount(context.Context) (int64, error) { return 0, nil }

func (s AdminFacadeStub) Orders(context.Context) ([]model.Order, error) { return nil, nil }

func (s AdminFacadeStub) Integration(_ context.Context, service string) (*model.Integration, error) {
	if row, ok := s.Integrations[service]; ok {
		return row, nil
	}
	return &model.Integration{Service: service, Config: json.RawMessage(`{}`)}, nil
}

func (s AdminFacadeStub) UpdateIntegration(_ context.Context, service string, cfg json.RawMessage, isActive bool) (*model.Integration, error) {
	return &model.Integration{Service: service, Config: cfg, IsActive: isActive}, nil
}

func (s AdminFacadeStub) DatabaseConfigured() bool { return false }

// StorefrontFacadeStub combines the stub facades for router level tests.
type StorefrontFacadeStub struct {
	CatalogFacadeStub
	CheckoutFacadeStub
	AdminFacadeStub
}

// ReconcilerFacadeStub mimics reconciliation worker interactions with the
// application facade.
type ReconcilerFacadeStub struct {
	ConfiguredVal bool
	Orders        [][]model.Order
	OrdersFn      func(context.Context, time.Time, int) ([]model.Order, error)
	CheckFn       func(context.Context, string) error

	mu        sync.Mutex
	fetchCall int
	Checked   []string
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

func (s *ReconcilerFacadeStub) PaymentConfigured() bool { return s.ConfiguredVal }

// OrdersAwaitingPayment returns batches from the configured queue.
func (s *ReconcilerFacadeStub) OrdersAwaitingPayment(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, createdBefore, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchCall < len(s.Orders) {
		batch := s.Orders[s.fetchCall]
		s.fetchCall++
		return batch, nil
	}
	return nil, nil
}

// CheckPayment records checked intents.
func (s *ReconcilerFacadeStub) CheckPayment(ctx context.Context, intentID string) error {
	s.mu.Lock()
	s.Checked = append(s.Checked, intentID)
	s.mu.Unlock()
	if s.CheckFn != nil {
		return s.CheckFn(ctx, intentID)
	}
	return nil
}
