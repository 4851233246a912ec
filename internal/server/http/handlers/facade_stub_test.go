package handlers

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// facadeStub scripts the storefront facade per test. Unset functions return
// zero values.
type facadeStub struct {
	productsFn        func(context.Context) ([]model.Product, error)
	productFn         func(context.Context, string) (*model.Product, error)
	shopifyConfigured bool
	shopifyProductsFn func(context.Context) ([]model.Product, error)
	ebayConfigured    bool
	ebayProductsFn    func(context.Context, string) ([]model.Product, error)

	checkoutFn        func(context.Context, model.ShippingInfo, []model.LineItem) (*usecase.CheckoutResult, error)
	orderFn           func(context.Context, string) (*model.Order, []model.OrderItem, error)
	createIntentFn    func(context.Context, int64, string) (string, error)
	paymentConfigured bool
	webhookConfigured bool
	publishableKey    string
	webhookFn         func(context.Context, []byte, string) error

	loginFn             func(string) (string, error)
	verifySessionErr    error
	apiToken            string
	adminProductsFn     func(context.Context) ([]model.Product, error)
	adminProductFn      func(context.Context, string) (*model.Product, error)
	createProductFn     func(context.Context, model.Product) (*model.Product, error)
	updateProductFn     func(context.Context, string, model.ProductUpdate) (*model.Product, error)
	deleteProductFn     func(context.Context, string) error
	importCSVFn         func(context.Context, io.Reader) (*usecase.ImportResult, error)
	matchImagesFn       func(context.Context, []usecase.UploadedImage) (*usecase.MatchResult, error)
	generateFn          func(context.Context, string, ai.GenerateOptions) (string, error)
	syncShopifyFn       func(context.Context) (int, error)
	pushToShopifyFn     func(context.Context, string) (*shopify.CreatedProduct, error)
	productCountFn      func(context.Context) (int64, error)
	ordersFn            func(context.Context) ([]model.Order, error)
	integrationFn       func(context.Context, string) (*model.Integration, error)
	updateIntegrationFn func(context.Context, string, json.RawMessage, bool) (*model.Integration, error)
	databaseConfigured  bool
}

func (f *facadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if f.productsFn != nil {
		return f.productsFn(ctx)
	}
	return nil, nil
}

func (f *facadeStub) Product(ctx context.Context, ref string) (*model.Product, error) {
	if f.productFn != nil {
		return f.productFn(ctx, ref)
	}
	return &model.Product{ID: ref}, nil
}

func (f *facadeStub) ShopifyConfigured(context.Context) bool { return f.shopifyConfigured }

func (f *facadeStub) ShopifyProducts(ctx context.Context) ([]model.Product, error) {
	if f.shopifyProductsFn != nil {
		return f.shopifyProductsFn(ctx)
	}
	return nil, nil
}

func (f *facadeStub) EbayConfigured(context.Context) bool { return f.ebayConfigured }

func (f *facadeStub) EbayProducts(ctx context.Context, query string) ([]model.Product, error) {
	if f.ebayProductsFn != nil {
		return f.ebayProductsFn(ctx, query)
	}
	return nil, nil
}

func (f *facadeStub) Checkout(ctx context.Context, info model.ShippingInfo, items []model.LineItem) (*usecase.CheckoutResult, error) {
	if f.checkoutFn != nil {
		return f.checkoutFn(ctx, info, items)
	}
	return &usecase.CheckoutResult{Order: &model.Order{ID: "o-1", Number: "A1B2C3D4E"}, ClientSecret: "pi_secret"}, nil
}

func (f *facadeStub) Order(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	if f.orderFn != nil {
		return f.orderFn(ctx, id)
	}
	return &model.Order{ID: id}, nil, nil
}

func (f *facadeStub) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if f.createIntentFn != nil {
		return f.createIntentFn(ctx, amount, currency)
	}
	return "pi_secret", nil
}

func (f *facadeStub) PaymentConfigured() bool { return f.paymentConfigured }
func (f *facadeStub) WebhookConfigured() bool { return f.webhookConfigured }
func (f *facadeStub) PublishableKey() string { return f.publishableKey }

func (f *facadeStub) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if f.webhookFn != nil {
		return f.webhookFn(ctx, payload, signature)
	}
	return nil
}

func (f *facadeStub) Login(password string) (string, error) {
	if f.loginFn != nil {
		return f.loginFn(password)
	}
	return "session-token", nil
}

func (f *facadeStub) VerifySession(string) error { return f.verifySessionErr }

func (f *facadeStub) VerifyAPIToken(token string) bool {
	return f.apiToken != "" && token == f.apiToken
}

func (f *facadeStub) AdminProducts(ctx context.Context) ([]model.Product, error) {
	if f.adminProductsFn != nil {
		return f.adminProductsFn(ctx)
	}
	return nil, nil
}

func (f *facadeStub) AdminProduct(ctx context.Context, ref string) (*model.Product, error) {
	if f.adminProductFn != nil {
		return f.adminProductFn(ctx, ref)
	}
	return &model.Product{ID: ref}, nil
}

func (f *facadeStub) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if f.createProductFn != nil {
		return f.createProductFn(ctx, product)
	}
	product.ID = "p-1"
	return &product, nil
}

func (f *facadeStub) UpdateProduct(ctx context.Context, ref string, update model.ProductUpdate) (*model.Product, error) {
	if f.updateProductFn != nil {
		return f.updateProductFn(ctx, ref, update)
	}
	return &model.Product{ID: ref}, nil
}

func (f *facadeStub) DeleteProduct(ctx context.Context, ref string) error {
	if f.deleteProductFn != nil {
		return f.deleteProductFn(ctx, ref)
	}
	return nil
}

func (f *facadeStub) ImportProductsCSV(ctx context.Context, r io.Reader) (*usecase.ImportResult, error) {
	if f.importCSVFn != nil {
		return f.importCSVFn(ctx, r)
	}
	return &usecase.ImportResult{}, nil
}

func (f *facadeStub) MatchProductImages(ctx context.Context, uploads []usecase.UploadedImage) (*usecase.MatchResult, error) {
	if f.matchImagesFn != nil {
		return f.matchImagesFn(ctx, uploads)
	}
	return &usecase.MatchResult{Uploaded: len(uploads)}, nil
}

func (f *facadeStub) GenerateDescription(ctx context.Context, ref string, opts ai.GenerateOptions) (string, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, ref, opts)
	}
	return "generated", nil
}

func (f *facadeStub) SyncShopify(ctx context.Context) (int, error) {
	if f.syncShopifyFn != nil {
		return f.syncShopifyFn(ctx)
	}
	return 0, nil
}

func (f *facadeStub) PushToShopify(ctx context.Context, ref string) (*shopify.CreatedProduct, error) {
	if f.pushToShopifyFn != nil {
		return f.pushToShopifyFn(ctx, ref)
	}
	return &shopify.CreatedProduct{ID: 1, Title: "pushed"}, nil
}

func (f *facadeStub) ProductCount(ctx context.Context) (int64, error) {
	if f.productCountFn != nil {
		return f.productCountFn(ctx)
	}
	return 0, nil
}

func (f *facadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if f.ordersFn != nil {
		return f.ordersFn(ctx)
	}
	return nil, nil
}

func (f *facadeStub) Integration(ctx context.Context, service string) (*model.Integration, error) {
	if f.integrationFn != nil {
		return f.integrationFn(ctx, service)
	}
	return &model.Integration{Service: service, Config: json.RawMessage(`{}`)}, nil
}

func (f *facadeStub) UpdateIntegration(ctx context.Context, service string, cfg json.RawMessage, isActive bool) (*model.Integration, error) {
	if f.updateIntegrationFn != nil {
		return f.updateIntegrationFn(ctx, service, cfg, isActive)
	}
	return &model.Integration{Service: service, Config: cfg, IsActive: isActive}, nil
}

func (f *facadeStub) DatabaseConfigured() bool { return f.databaseConfigured }
