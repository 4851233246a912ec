package app

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/ebay"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	"github.com/glimmerco/lumiere/internal/config"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
	pkgAuth "github.com/glimmerco/lumiere/internal/pkg/auth"
	"github.com/glimmerco/lumiere/internal/usecase"
)

// StorefrontFacade aggregates use cases behind the HTTP and worker surfaces.
type StorefrontFacade struct {
	catalog      *usecase.CatalogUseCase
	orders       *usecase.OrderUseCase
	payments     *usecase.PaymentUseCase
	products     *usecase.ProductUseCase
	integrations *usecase.IntegrationUseCase
	orderRepo    repository.OrderRepository
	guard        *pkgAuth.Guard
	stripe       stripe.Client
	ebay         ebay.Client
	cfg          *config.Config
}

// NewStorefrontFacade constructs the facade.
func NewStorefrontFacade(
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	products *usecase.ProductUseCase,
	integrations *usecase.IntegrationUseCase,
	orderRepo repository.OrderRepository,
	guard *pkgAuth.Guard,
	stripeClient stripe.Client,
	ebayClient ebay.Client,
	cfg *config.Config,
) *StorefrontFacade {
	return &StorefrontFacade{
		catalog:      catalog,
		orders:       orders,
		payments:     payments,
		products:     products,
		integrations: integrations,
		orderRepo:    orderRepo,
		guard:        guard,
		stripe:       stripeClient,
		ebay:         ebayClient,
		cfg:          cfg,
	}
}

// --- catalog ---

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *StorefrontFacade) Product(ctx context.Context, ref string) (*model.Product, error) {
	return f.catalog.Get(ctx, ref)
}

func (f *StorefrontFacade) ShopifyConfigured(ctx context.Context) bool {
	cfg, err := f.integrations.ShopifyConfig(ctx)
	return err == nil && cfg.Valid()
}

func (f *StorefrontFacade) ShopifyProducts(ctx context.Context) ([]model.Product, error) {
	cfg, err := f.integrations.ShopifyConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Valid() {
		return nil, shopify.ErrNotConfigured
	}
	return f.catalog.ShopifyProducts(ctx, cfg)
}

func (f *StorefrontFacade) EbayConfigured(ctx context.Context) bool {
	cfg, err := f.integrations.EbayConfig(ctx)
	return err == nil && cfg.Valid()
}

func (f *StorefrontFacade) EbayProducts(ctx context.Context, query string) ([]model.Product, error) {
	cfg, err := f.integrations.EbayConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Valid() {
		return nil, ebay.ErrNotConfigured
	}
	return f.ebay.SearchProducts(ctx, cfg, query)
}

// --- checkout ---

func (f *StorefrontFacade) Checkout(ctx context.Context, info model.ShippingInfo, items []model.LineItem) (*usecase.CheckoutResult, error) {
	return f.payments.StartCheckout(ctx, info, items)
}

func (f *StorefrontFacade) Order(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	return f.orders.GetWithItems(ctx, id)
}

func (f *StorefrontFacade) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	intent, err := f.stripe.CreatePaymentIntent(ctx, amount, currency)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

func (f *StorefrontFacade) PaymentConfigured() bool {
	return f.payments.Configured()
}

func (f *StorefrontFacade) WebhookConfigured() bool {
	return f.cfg.StripeWebhookSecret != ""
}

func (f *StorefrontFacade) PublishableKey() string {
	return f.cfg.StripePublishableKey
}

func (f *StorefrontFacade) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return f.payments.HandleWebhook(ctx, payload, signature)
}

// --- reconciliation ---

func (f *StorefrontFacade) OrdersAwaitingPayment(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	return f.orderRepo.ListAwaitingPayment(ctx, createdBefore, limit)
}

func (f *StorefrontFacade) CheckPayment(ctx context.Context, intentID string) error {
	return f.payments.CheckIntent(ctx, intentID)
}

// --- admin ---

func (f *StorefrontFacade) Login(password string) (string, error) {
	return f.guard.Login(password)
}

func (f *StorefrontFacade) VerifySession(token string) error {
	return f.guard.VerifySession(token)
}

func (f *StorefrontFacade) VerifyAPIToken(token string) bool {
	return f.guard.VerifyAPIToken(token)
}

func (f *StorefrontFacade) AdminProducts(ctx context.Context) ([]model.Product, error) {
	return f.products.List(ctx)
}

func (f *StorefrontFacade) AdminProduct(ctx context.Context, ref string) (*model.Product, error) {
	return f.products.Get(ctx, ref)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.products.Create(ctx, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, ref string, update model.ProductUpdate) (*model.Product, error) {
	return f.products.Update(ctx, ref, update)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, ref string) error {
	return f.products.Delete(ctx, ref)
}

func (f *StorefrontFacade) ImportProductsCSV(ctx context.Context, r io.Reader) (*usecase.ImportResult, error) {
	return f.products.ImportCSV(ctx, r)
}

func (f *StorefrontFacade) MatchProductImages(ctx context.Context, uploads []usecase.UploadedImage) (*usecase.MatchResult, error) {
	return f.products.MatchImages(ctx, uploads)
}

func (f *StorefrontFacade) GenerateDescription(ctx context.Context, ref string, opts ai.GenerateOptions) (string, error) {
	return f.products.GenerateDescription(ctx, ref, opts)
}

func (f *StorefrontFacade) SyncShopify(ctx context.Context) (int, error) {
	return f.products.SyncShopify(ctx)
}

func (f *StorefrontFacade) PushToShopify(ctx context.Context, ref string) (*shopify.CreatedProduct, error) {
	return f.products.PushToShopify(ctx, ref)
}

func (f *StorefrontFacade) ProductCount(ctx context.Context) (int64, error) {
	return f.products.Count(ctx)
}

func (f *StorefrontFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *StorefrontFacade) Integration(ctx context.Context, service string) (*model.Integration, error) {
	return f.integrations.Get(ctx, service)
}

func (f *StorefrontFacade) UpdateIntegration(ctx context.Context, service string, cfg json.RawMessage, isActive bool) (*model.Integration, error) {
	return f.integrations.Update(ctx, service, cfg, isActive)
}

func (f *StorefrontFacade) DatabaseConfigured() bool {
	return f.cfg.DatabaseURI != ""
}
