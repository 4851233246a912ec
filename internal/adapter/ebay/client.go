package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

// ErrNotConfigured indicates no eBay credentials are available.
var ErrNotConfigured = errors.New("ebay is not configured")

const (
	defaultBaseURL       = "https://api.ebay.com"
	defaultMarketplaceID = "EBAY_US"
	defaultQuery         = "jewelry"
	feedLimit            = 10
)

// Config carries the credentials for the eBay Browse API.
type Config struct {
	OAuthToken    string `json:"oauthToken"`
	MarketplaceID string `json:"marketplaceId"`
}

// Valid reports whether the config can authenticate requests.
func (c Config) Valid() bool {
	return c.OAuthToken != ""
}

// Client reads the eBay item feed.
type Client interface {
	SearchProducts(ctx context.Context, cfg Config, query string) ([]model.Product, error)
}

// HTTPClient implements Client via the eBay Browse API.
type HTTPClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewHTTPClient creates an eBay client with default timeout.
func NewHTTPClient(logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		baseURL:    defaultBaseURL,
	}
}

type itemSummary struct {
	ItemID string `json:"itemId"`
	Title  string `json:"title"`
	Price  struct {
		Value string `json:"value"`
	} `json:"price"`
	Image struct {
		ImageURL string `json:"imageUrl"`
	} `json:"image"`
}

// SearchProducts queries the item feed and maps results into the catalog
// product shape. An empty query falls back to the storefront's domain.
func (c *HTTPClient) SearchProducts(ctx context.Context, cfg Config, query string) ([]model.Product, error) {
	if !cfg.Valid() {
		return nil, ErrNotConfigured
	}
	if query == "" {
		query = defaultQuery
	}

	endpoint := fmt.Sprintf("%s/buy/browse/v1/item_summary/search?q=%s&limit=%d",
		c.baseURL, url.QueryEscape(query), feedLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	marketplace := cfg.MarketplaceID
	if marketplace == "" {
		marketplace = defaultMarketplaceID
	}
	req.Header.Set("Authorization", "Bearer "+cfg.OAuthToken)
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", marketplace)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ebay feed request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("ebay error: %s", resp.Status)
	}

	var feed struct {
		ItemSummaries []itemSummary `json:"itemSummaries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(feed.ItemSummaries))
	for _, item := range feed.ItemSummaries {
		products = append(products, mapItem(item))
	}
	return products, nil
}

func mapItem(item itemSummary) model.Product {
	price, _ := strconv.ParseFloat(item.Price.Value, 64)
	product := model.Product{
		ID:        "ebay_" + item.ItemID,
		SKU:       item.ItemID,
		Name:      item.Title,
		Price:     price,
		Category:  "marketplace",
		MetalType: "Unknown",
		Gemstone:  "Unknown",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if item.Image.ImageURL != "" {
		product.Images = []string{item.Image.ImageURL}
	}
	return product
}
