package handlers

import (
	"context"
	"encoding/json"
	"io"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/usecase"
)

// CatalogFacade serves the public product surface.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, ref string) (*model.Product, error)
	ShopifyConfigured(ctx context.Context) bool
	ShopifyProducts(ctx context.Context) ([]model.Product, error)
	EbayConfigured(ctx context.Context) bool
	EbayProducts(ctx context.Context, query string) ([]model.Product, error)
}

// CheckoutFacade covers order placement and payment settlement.
type CheckoutFacade interface {
	Checkout(ctx context.Context, info model.ShippingInfo, items []model.LineItem) (*usecase.CheckoutResult, error)
	Order(ctx context.Context, id string) (*model.Order, []model.OrderItem, error)
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
	PaymentConfigured() bool
	WebhookConfigured() bool
	PublishableKey() string
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// AdminFacade covers the admin console operations.
type AdminFacade interface {
	Login(password string) (string, error)
	VerifySession(token string) error
	VerifyAPIToken(token string) bool

	AdminProducts(ctx context.Context) ([]model.Product, error)
	AdminProduct(ctx context.Context, ref string) (*model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, ref string, update model.ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, ref string) error
	ImportProductsCSV(ctx context.Context, r io.Reader) (*usecase.ImportResult, error)
	MatchProductImages(ctx context.Context, uploads []usecase.UploadedImage) (*usecase.MatchResult, error)
	GenerateDescription(ctx context.Context, ref string, opts ai.GenerateOptions) (string, error)
	SyncShopify(ctx context.Context) (int, error)
	PushToShopify(ctx context.Context, ref string) (*shopify.CreatedProduct, error)
	ProductCount(ctx context.Context) (int64, error)
	Orders(ctx context.Context) ([]model.Order, error)
	Integration(ctx context.Context, service string) (*model.Integration, error)
	UpdateIntegration(ctx context.Context, service string, cfg json.RawMessage, isActive bool) (*model.Integration, error)
	DatabaseConfigured() bool
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	CatalogFacade
	CheckoutFacade
	AdminFacade
}
