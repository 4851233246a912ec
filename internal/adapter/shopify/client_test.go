package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

func testClient(baseURL string) *HTTPClient {
	client := NewHTTPClient(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	client.baseURL = baseURL
	return client
}

func testShopConfig() Config {
	return Config{ShopDomain: "store.myshopify.com", AccessToken: "shpat_test"}
}

func productFixture() model.Product {
	return model.Product{
		SKU:      "R-100",
		Name:     "Gold Ring",
		Price:    120,
		Category: "Rings",
		Images:   []string{"https://cdn/img.jpg"},
	}
}

func TestConfigValid(t *testing.T) {
	if !testShopConfig().Valid() {
		t.Fatal("expected valid config")
	}
	if (Config{ShopDomain: "store.myshopify.com"}).Valid() {
		t.Fatal("expected missing token to invalidate config")
	}
	if (Config{AccessToken: "shpat_test"}).Valid() {
		t.Fatal("expected missing domain to invalidate config")
	}
}

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/products.json" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Shopify-Access-Token") != "shpat_test" {
			t.Errorf("missing access token header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id":42,"title":"Gold Ring","body_html":"<p>desc</p>","product_type":"Rings",
			 "variants":[{"price":"120.00","sku":"R-100","inventory_quantity":3}],
			 "images":[{"src":"https://cdn/img.jpg"},{"src":""}]},
			{"id":43,"title":"Bare","variants":[],"images":[]}
		]}`))
	}))
	defer server.Close()

	products, err := testClient(server.URL).FetchProducts(context.Background(), testShopConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}

	ring := products[0]
	if ring.ID != "shopify_42" || ring.SKU != "R-100" || ring.Price != 120 || ring.StockQuantity != 3 {
		t.Fatalf("unexpected mapping %+v", ring)
	}
	if len(ring.Images) != 1 || ring.Images[0] != "https://cdn/img.jpg" {
		t.Fatalf("unexpected images %v", ring.Images)
	}

	bare := products[1]
	if bare.SKU != "43" || bare.Category != "marketplace" {
		t.Fatalf("unexpected fallbacks %+v", bare)
	}
}

func TestFetchProductsErrors(t *testing.T) {
	if _, err := testClient("http://unused").FetchProducts(context.Background(), Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).FetchProducts(context.Background(), testShopConfig()); err == nil {
		t.Fatal("expected error for unauthorized response")
	}
}

func TestCreateProduct(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/products.json" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"product":{"id":99,"title":"Gold Ring"}}`))
	}))
	defer server.Close()

	created, err := testClient(server.URL).CreateProduct(context.Background(), testShopConfig(), productFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 99 || created.Title != "Gold Ring" {
		t.Fatalf("unexpected result %+v", created)
	}

	product, _ := payload["product"].(map[string]any)
	if product["title"] != "Gold Ring" || product["product_type"] != "Rings" {
		t.Fatalf("unexpected payload %v", product)
	}
	variants, _ := product["variants"].([]any)
	if len(variants) != 1 {
		t.Fatalf("unexpected variants %v", product["variants"])
	}
	variant, _ := variants[0].(map[string]any)
	if variant["price"] != "120.00" || variant["sku"] != "R-100" {
		t.Fatalf("unexpected variant %v", variant)
	}
}

func TestCreateProductErrors(t *testing.T) {
	if _, err := testClient("http://unused").CreateProduct(context.Background(), Config{}, productFixture()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).CreateProduct(context.Background(), testShopConfig(), productFixture()); err == nil {
		t.Fatal("expected error for rejected push")
	}
}
