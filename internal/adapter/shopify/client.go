package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

// ErrNotConfigured indicates no Shopify credentials are available.
var ErrNotConfigured = errors.New("shopify is not configured")

const apiVersion = "2024-01"

// Config carries the credentials for one Shopify shop.
type Config struct {
	ShopDomain  string `json:"shopDomain"`
	AccessToken string `json:"accessToken"`
}

// Valid reports whether the config can authenticate requests.
func (c Config) Valid() bool {
	return c.ShopDomain != "" && c.AccessToken != ""
}

// Client reads and writes products on a Shopify shop.
type Client interface {
	FetchProducts(ctx context.Context, cfg Config) ([]model.Product, error)
	CreateProduct(ctx context.Context, cfg Config, product model.Product) (*CreatedProduct, error)
}

// CreatedProduct identifies a product pushed to Shopify.
type CreatedProduct struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// HTTPClient implements Client via the Shopify Admin REST API.
type HTTPClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewHTTPClient creates a Shopify client with default timeout. baseURL is
// empty in production; tests point it at a local server.
func NewHTTPClient(logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type feedProduct struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	BodyHTML    string `json:"body_html"`
	ProductType string `json:"product_type"`
	Variants    []struct {
		Price             string `json:"price"`
		SKU               string `json:"sku"`
		InventoryQuantity int    `json:"inventory_quantity"`
	} `json:"variants"`
	Images []struct {
		Src string `json:"src"`
	} `json:"images"`
}

// FetchProducts returns the shop's product feed mapped into the catalog shape.
func (c *HTTPClient) FetchProducts(ctx context.Context, cfg Config) ([]model.Product, error) {
	if !cfg.Valid() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(cfg, "/products.json"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("shopify feed request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("shopify error: %s", resp.Status)
	}

	var feed struct {
		Products []feedProduct `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(feed.Products))
	for _, p := range feed.Products {
		products = append(products, mapFeedProduct(p))
	}
	return products, nil
}

// CreateProduct pushes one local product to the shop.
func (c *HTTPClient) CreateProduct(ctx context.Context, cfg Config, product model.Product) (*CreatedProduct, error) {
	if !cfg.Valid() {
		return nil, ErrNotConfigured
	}

	images := make([]map[string]string, 0, len(product.Images))
	for _, src := range product.Images {
		images = append(images, map[string]string{"src": src})
	}

	payload := map[string]any{
		"product": map[string]any{
			"title":        product.Name,
			"body_html":    product.Description,
			"product_type": product.Category,
			"images":       images,
			"variants": []map[string]any{{
				"price": strconv.FormatFloat(product.Price, 'f', 2, 64),
				"sku":   product.SKU,
			}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(cfg, "/products.json"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("shopify push failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("shopify error: %s", resp.Status)
	}

	var created struct {
		Product CreatedProduct `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}
	return &created.Product, nil
}

func (c *HTTPClient) endpoint(cfg Config, path string) string {
	if c.baseURL != "" {
		return c.baseURL + path
	}
	return fmt.Sprintf("https://%s/admin/api/%s%s", cfg.ShopDomain, apiVersion, path)
}

func mapFeedProduct(p feedProduct) model.Product {
	product := model.Product{
		ID:          "shopify_" + strconv.FormatInt(p.ID, 10),
		Name:        p.Title,
		Description: p.BodyHTML,
		Category:    p.ProductType,
		MetalType:   "Unknown",
		Gemstone:    "Unknown",
		SKU:         strconv.FormatInt(p.ID, 10),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if product.Category == "" {
		product.Category = "marketplace"
	}
	for _, img := range p.Images {
		if img.Src != "" {
			product.Images = append(product.Images, img.Src)
		}
	}
	if len(p.Variants) > 0 {
		v := p.Variants[0]
		if price, err := strconv.ParseFloat(v.Price, 64); err == nil {
			product.Price = price
		}
		if v.SKU != "" {
			product.SKU = v.SKU
		}
		product.StockQuantity = v.InventoryQuantity
	}
	return product
}
