package test

import (
	"context"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/ebay"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/adapter/stripe"
	"github.com/glimmerco/lumiere/internal/domain/model"
)

// StripeClientStub lets tests script the payment processor.
type StripeClientStub struct {
	ConfiguredVal bool
	CreateFn      func(context.Context, int64, string) (*stripe.PaymentIntent, error)
	GetFn         func(context.Context, string) (*stripe.PaymentIntent, error)

	CreatedAmounts []int64
	CheckedIntents []string
}

func (s *StripeClientStub) Configured() bool { return s.ConfiguredVal }

func (s *StripeClientStub) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*stripe.PaymentIntent, error) {
	s.CreatedAmounts = append(s.CreatedAmounts, amount)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, amount, currency)
	}
	return &stripe.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret", Status: "requires_payment_method"}, nil
}

func (s *StripeClientStub) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	s.CheckedIntents = append(s.CheckedIntents, id)
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &stripe.PaymentIntent{ID: id, Status: "succeeded"}, nil
}

// ShopifyClientStub scripts the marketplace feed.
type ShopifyClientStub struct {
	FetchFn  func(context.Context, shopify.Config) ([]model.Product, error)
	CreateFn func(context.Context, shopify.Config, model.Product) (*shopify.CreatedProduct, error)
	Pushed   []model.Product
}

func (s *ShopifyClientStub) FetchProducts(ctx context.Context, cfg shopify.Config) ([]model.Product, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, cfg)
	}
	return nil, nil
}

func (s *ShopifyClientStub) CreateProduct(ctx context.Context, cfg shopify.Config, product model.Product) (*shopify.CreatedProduct, error) {
	s.Pushed = append(s.Pushed, product)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, cfg, product)
	}
	return &shopify.CreatedProduct{ID: 1, Title: product.Name}, nil
}

// EbayClientStub scripts marketplace search.
type EbayClientStub struct {
	SearchFn func(context.Context, ebay.Config, string) ([]model.Product, error)
}

func (s *EbayClientStub) SearchProducts(ctx context.Context, cfg ebay.Config, query string) ([]model.Product, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, cfg, query)
	}
	return nil, nil
}

// GeneratorStub scripts AI description generation.
type GeneratorStub struct {
	GenerateFn func(context.Context, model.Product, ai.GenerateOptions, *ai.Config) (string, error)
}

func (s *GeneratorStub) GenerateDescription(ctx context.Context, product model.Product, opts ai.GenerateOptions, cfg *ai.Config) (string, error) {
	if s.GenerateFn != nil {
		return s.GenerateFn(ctx, product, opts, cfg)
	}
	return "stub description", nil
}
