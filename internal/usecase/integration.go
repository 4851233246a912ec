package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/ebay"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	"github.com/glimmerco/lumiere/internal/config"
	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

// Service names recognized by the integration store.
const (
	ServiceShopify = "shopify"
	ServiceEbay    = "ebay"
	ServiceAI      = "ai"
	ServiceChat    = "chat"
)

// IntegrationUseCase manages per-service configuration stored in the
// database with environment fallback.
type IntegrationUseCase struct {
	integrations repository.IntegrationRepository
	cfg          *config.Config
}

// NewIntegrationUseCase constructs IntegrationUseCase.
func NewIntegrationUseCase(integrations repository.IntegrationRepository, cfg *config.Config) *IntegrationUseCase {
	return &IntegrationUseCase{integrations: integrations, cfg: cfg}
}

// Get returns the stored configuration for a service with secrets masked.
func (u *IntegrationUseCase) Get(ctx context.Context, service string) (*model.Integration, error) {
	integration, err := u.integrations.Get(ctx, service)
	if err != nil {
		return nil, err
	}
	masked, err := maskSecrets(integration.Config)
	if err != nil {
		return nil, err
	}
	integration.Config = masked
	return integration, nil
}

// Update validates and stores service configuration.
func (u *IntegrationUseCase) Update(ctx context.Context, service string, cfg json.RawMessage, isActive bool) (*model.Integration, error) {
	switch service {
	case ServiceShopify, ServiceEbay, ServiceChat:
	case ServiceAI:
		var aiCfg ai.Config
		if err := json.Unmarshal(cfg, &aiCfg); err != nil {
			return nil, domainErrors.NewValidationError("config")
		}
		if err := aiCfg.Validate(); err != nil {
			return nil, err
		}
	default:
		return nil, domainErrors.NewValidationError("service")
	}

	saved, err := u.integrations.Upsert(ctx, model.Integration{
		Service:  service,
		Config:   cfg,
		IsActive: isActive,
	})
	if err != nil {
		return nil, err
	}
	masked, err := maskSecrets(saved.Config)
	if err != nil {
		return nil, err
	}
	saved.Config = masked
	return saved, nil
}

// maskSecrets hides api key values in a config document, keeping the last
// four characters visible.
func maskSecrets(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return raw, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for key, value := range doc {
		lower := strings.ToLower(key)
		if !strings.Contains(lower, "apikey") && !strings.Contains(lower, "token") && !strings.Contains(lower, "secret") {
			continue
		}
		s, ok := value.(string)
		if !ok || s == "" {
			continue
		}
		if len(s) <= 4 {
			doc[key] = "****"
		} else {
			doc[key] = "****" + s[len(s)-4:]
		}
	}
	return json.Marshal(doc)
}

// activeConfig decodes the stored config row for a service when present and
// active. A missing row is not an error.
func (u *IntegrationUseCase) activeConfig(ctx context.Context, service string, out any) (bool, error) {
	integration, err := u.integrations.Get(ctx, service)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !integration.IsActive {
		return false, nil
	}
	if err := json.Unmarshal(integration.Config, out); err != nil {
		return false, err
	}
	return true, nil
}

// ShopifyConfig resolves shopify credentials from the store or environment.
func (u *IntegrationUseCase) ShopifyConfig(ctx context.Context) (shopify.Config, error) {
	var cfg shopify.Config
	ok, err := u.activeConfig(ctx, ServiceShopify, &cfg)
	if err != nil {
		return shopify.Config{}, err
	}
	if ok && cfg.Valid() {
		return cfg, nil
	}
	return shopify.Config{
		ShopDomain:  u.cfg.ShopifyShopDomain,
		AccessToken: u.cfg.ShopifyAccessToken,
	}, nil
}

// EbayConfig resolves ebay credentials from the store or environment.
func (u *IntegrationUseCase) EbayConfig(ctx context.Context) (ebay.Config, error) {
	var cfg ebay.Config
	ok, err := u.activeConfig(ctx, ServiceEbay, &cfg)
	if err != nil {
		return ebay.Config{}, err
	}
	if ok && cfg.Valid() {
		return cfg, nil
	}
	return ebay.Config{
		OAuthToken:    u.cfg.EbayOAuthToken,
		MarketplaceID: u.cfg.EbayMarketplaceID,
	}, nil
}

// AIConfig resolves the description generator configuration. Returns nil
// when nothing usable is configured so callers fall back to templates.
func (u *IntegrationUseCase) AIConfig(ctx context.Context) (*ai.Config, error) {
	var cfg ai.Config
	ok, err := u.activeConfig(ctx, ServiceAI, &cfg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}
