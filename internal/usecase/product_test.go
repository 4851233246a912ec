package usecase_test

import (
	"context"
	"github.com/glimmerco/lumiere/internal/usecase"
	"strings"
	"testing"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/test"
)

func newProductUC(products *test.ProductRepositoryStub, shopifyClient *test.ShopifyClientStub) *usecase.ProductUseCase {
	integrations := usecase.NewIntegrationUseCase(test.NewIntegrationRepositoryStub(), testConfig())
	if shopifyClient == nil {
		shopifyClient = &test.ShopifyClientStub{}
	}
	return usecase.NewProductUseCase(products, integrations, shopifyClient, &test.GeneratorStub{})
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$12.00", 12, true},
		{"$12.00 - $18.00", 12, true},
		{"1500", 1500, true},
		{"  $9.95  ", 9.95, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"$0.00", 0, false},
	}
	for _, tc := range cases {
		got, ok := usecase.ParsePrice(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParsePrice(%q) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestImportCSVUpsertsRows(t *testing.T) {
	products := &test.ProductRepositoryStub{Resolved: map[string]string{}}
	uc := newProductUC(products, nil)

	csv := strings.Join([]string{
		"SKU,Name,Category,Price,Description,Metal,Old_Photo_Name,New_Photo_Name",
		"R-100,Gold Ring,rings,$120.00,Classic band,gold,r100_old.jpg,r100_new.jpg",
		"N-200,Silver Necklace,necklaces,$45.50 - $60.00,,silver,,",
	}, "\n")

	result, err := uc.ImportCSV(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 2 || result.Updated != 0 || result.Total != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected row errors %v", result.Errors)
	}
	if len(products.Upserted) != 2 {
		t.Fatalf("expected two upsert calls, got %d", len(products.Upserted))
	}

	first := products.Upserted[0][0]
	if first.SKU != "R-100" || first.Price != 120 || first.MetalType != "gold" {
		t.Fatalf("unexpected product %+v", first)
	}
	if len(first.Images) != 2 || first.Images[0] != "r100_old.jpg" {
		t.Fatalf("photo columns not collected: %v", first.Images)
	}

	second := products.Upserted[1][0]
	if second.Price != 45.5 {
		t.Fatalf("range price not parsed: %v", second.Price)
	}
}

func TestImportCSVReportsPerRowErrors(t *testing.T) {
	products := &test.ProductRepositoryStub{Resolved: map[string]string{}}
	uc := newProductUC(products, nil)

	csv := strings.Join([]string{
		"SKU,Name,Category,Price",
		",Gold Ring,rings,$120.00",
		"R-101,,rings,$120.00",
		"R-102,Band,rings,free",
		"R-103,Band,,$10",
		"R-104,Band,rings,$10",
	}, "\n")

	result, err := uc.ImportCSV(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("expected one good row, got %+v", result)
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected four row errors, got %v", result.Errors)
	}
	// row numbers count the header line
	if result.Errors[0].Row != 2 || result.Errors[0].Message != "SKU is required" {
		t.Fatalf("unexpected first error %+v", result.Errors[0])
	}
	if result.Errors[3].Row != 5 || result.Errors[3].Message != "Category is required" {
		t.Fatalf("unexpected last error %+v", result.Errors[3])
	}
}

func TestImportCSVCountsUpdatesForExistingSKUs(t *testing.T) {
	products := &test.ProductRepositoryStub{Resolved: map[string]string{"R-100": "p-1"}}
	uc := newProductUC(products, nil)

	csv := "SKU,Name,Category,Price\nR-100,Gold Ring,rings,$120.00"

	result, err := uc.ImportCSV(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 0 || result.Updated != 1 {
		t.Fatalf("expected an update, got %+v", result)
	}
}

func TestMatchImagesReplacesPlaceholders(t *testing.T) {
	products := &test.ProductRepositoryStub{Products: []model.Product{
		{ID: "p-1", Images: []string{"r100_old.jpg", "r100_side"}},
		{ID: "p-2", Images: []string{"n200.png"}},
	}}
	uc := newProductUC(products, nil)

	result, err := uc.MatchImages(context.Background(), []usecase.UploadedImage{
		{Name: "r100_old.jpg", URL: "/uploads/img-1.jpg"},
		{Name: "r100_side.jpg", URL: "/uploads/img-2.jpg"},
		{Name: "unrelated.jpg", URL: "/uploads/img-3.jpg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Uploaded != 3 || result.Matched != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Unmatched) != 1 || result.Unmatched[0] != "unrelated.jpg" {
		t.Fatalf("unexpected unmatched %v", result.Unmatched)
	}

	replaced := products.Replaced["p-1"]
	if len(replaced) != 2 || replaced[0] != "/uploads/img-1.jpg" || replaced[1] != "/uploads/img-2.jpg" {
		t.Fatalf("placeholders not replaced: %v", replaced)
	}
	if _, touched := products.Replaced["p-2"]; touched {
		t.Fatalf("untouched product must not be rewritten")
	}
}

func TestCreateProductValidation(t *testing.T) {
	uc := newProductUC(&test.ProductRepositoryStub{}, nil)

	_, err := uc.Create(context.Background(), model.Product{Price: -1, StockQuantity: -2})
	ve, ok := domainErrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected name, price and stock reported, got %v", ve.Fields)
	}
}

func TestUpdateProductRejectsEmptyPatch(t *testing.T) {
	uc := newProductUC(&test.ProductRepositoryStub{}, nil)

	if _, err := uc.Update(context.Background(), "p-1", model.ProductUpdate{}); err == nil {
		t.Fatalf("expected error for empty update")
	}
}

func TestSyncShopifyDeduplicatesSKUs(t *testing.T) {
	products := &test.ProductRepositoryStub{}
	shopifyClient := &test.ShopifyClientStub{
		FetchFn: func(context.Context, shopify.Config) ([]model.Product, error) {
			return []model.Product{
				{ID: "shopify_1", SKU: "A-1", Name: "Ring"},
				{ID: "shopify_2", SKU: "A-1", Name: "Other Ring"},
				{ID: "shopify_3", SKU: "", Name: "Pendant"},
			}, nil
		},
	}
	uc := newProductUC(products, shopifyClient)

	count, err := uc.SyncShopify(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("unexpected count %d", count)
	}

	payload := products.Upserted[0]
	if payload[0].SKU != "A-1" || payload[1].SKU != "shopify_2" || payload[2].SKU != "shopify_3" {
		t.Fatalf("duplicate SKUs not resolved: %+v", payload)
	}
}

func TestSyncShopifyUnconfigured(t *testing.T) {
	integrations := usecase.NewIntegrationUseCase(test.NewIntegrationRepositoryStub(), emptyConfig())
	uc := usecase.NewProductUseCase(&test.ProductRepositoryStub{}, integrations, &test.ShopifyClientStub{}, &test.GeneratorStub{})

	if _, err := uc.SyncShopify(context.Background()); err != shopify.ErrNotConfigured {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestPushToShopify(t *testing.T) {
	stored := &model.Product{ID: "p-1", Name: "Gold Ring", SKU: "R-100", Price: 120}
	products := &test.ProductRepositoryStub{StoredProduct: stored}
	shopifyClient := &test.ShopifyClientStub{}
	uc := newProductUC(products, shopifyClient)

	created, err := uc.PushToShopify(context.Background(), "R-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Title != "Gold Ring" {
		t.Fatalf("unexpected created product %+v", created)
	}
	if len(shopifyClient.Pushed) != 1 {
		t.Fatalf("product not pushed")
	}
}

func TestGenerateDescriptionUsesStoredProduct(t *testing.T) {
	stored := &model.Product{ID: "p-1", Name: "Gold Ring"}
	products := &test.ProductRepositoryStub{StoredProduct: stored}
	uc := newProductUC(products, nil)

	description, err := uc.GenerateDescription(context.Background(), "p-1", ai.GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if description != "stub description" {
		t.Fatalf("unexpected description %q", description)
	}
}
