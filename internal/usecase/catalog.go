package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/glimmerco/lumiere/internal/adapter/ebay"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

// CatalogUseCase serves the storefront product surface: local products
// enriched with marketplace listings when those integrations are configured.
type CatalogUseCase struct {
	products     repository.ProductRepository
	integrations *IntegrationUseCase
	shopify      shopify.Client
	ebay         ebay.Client
	logger       *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(
	products repository.ProductRepository,
	integrations *IntegrationUseCase,
	shopifyClient shopify.Client,
	ebayClient ebay.Client,
	logger *slog.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		products:     products,
		integrations: integrations,
		shopify:      shopifyClient,
		ebay:         ebayClient,
		logger:       logger,
	}
}

// List returns the merged catalog. Marketplace failures degrade to the local
// catalog rather than failing the request.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	local, err := u.products.List(ctx)
	if err != nil {
		return nil, err
	}

	result := local
	result = append(result, u.shopifyListings(ctx)...)
	result = append(result, u.ebayListings(ctx)...)
	return result, nil
}

// Get returns a single local product by id or SKU.
func (u *CatalogUseCase) Get(ctx context.Context, ref string) (*model.Product, error) {
	return u.products.Get(ctx, ref)
}

// ShopifyProducts fetches the raw marketplace feed for explicit credentials.
func (u *CatalogUseCase) ShopifyProducts(ctx context.Context, cfg shopify.Config) ([]model.Product, error) {
	return u.shopify.FetchProducts(ctx, cfg)
}

func (u *CatalogUseCase) shopifyListings(ctx context.Context) []model.Product {
	cfg, err := u.integrations.ShopifyConfig(ctx)
	if err != nil {
		u.logger.Error("resolve shopify config", "error", err)
		return nil
	}
	if !cfg.Valid() {
		return nil
	}

	listings, err := u.shopify.FetchProducts(ctx, cfg)
	if err != nil {
		if !errors.Is(err, shopify.ErrNotConfigured) {
			u.logger.Error("fetch shopify products", "error", err)
		}
		return nil
	}
	return listings
}

func (u *CatalogUseCase) ebayListings(ctx context.Context) []model.Product {
	cfg, err := u.integrations.EbayConfig(ctx)
	if err != nil {
		u.logger.Error("resolve ebay config", "error", err)
		return nil
	}
	if !cfg.Valid() {
		return nil
	}

	listings, err := u.ebay.SearchProducts(ctx, cfg, "")
	if err != nil {
		if !errors.Is(err, ebay.ErrNotConfigured) {
			u.logger.Error("search ebay products", "error", err)
		}
		return nil
	}
	return listings
}
