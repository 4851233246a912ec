package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/glimmerco/lumiere/internal/adapter/ai"
	"github.com/glimmerco/lumiere/internal/adapter/shopify"
	domainErrors "github.com/glimmerco/lumiere/internal/domain/errors"
	"github.com/glimmerco/lumiere/internal/domain/model"
	"github.com/glimmerco/lumiere/internal/domain/repository"
)

// ProductUseCase covers the admin console product operations.
type ProductUseCase struct {
	products     repository.ProductRepository
	integrations *IntegrationUseCase
	shopify      shopify.Client
	generator    ai.Generator
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(
	products repository.ProductRepository,
	integrations *IntegrationUseCase,
	shopifyClient shopify.Client,
	generator ai.Generator,
) *ProductUseCase {
	return &ProductUseCase{
		products:     products,
		integrations: integrations,
		shopify:      shopifyClient,
		generator:    generator,
	}
}

func (u *ProductUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

func (u *ProductUseCase) Get(ctx context.Context, ref string) (*model.Product, error) {
	return u.products.Get(ctx, ref)
}

// Create validates and stores a new product.
func (u *ProductUseCase) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	var missing []string
	if strings.TrimSpace(product.Name) == "" {
		missing = append(missing, "name")
	}
	if product.Price < 0 {
		missing = append(missing, "price")
	}
	if product.StockQuantity < 0 {
		missing = append(missing, "stock_quantity")
	}
	if product.MinPrice != nil && *product.MinPrice < 0 {
		missing = append(missing, "min_price")
	}
	if len(missing) > 0 {
		return nil, domainErrors.NewValidationError(missing...)
	}
	return u.products.Create(ctx, product)
}

// Update applies a partial update addressed by id or SKU.
func (u *ProductUseCase) Update(ctx context.Context, ref string, update model.ProductUpdate) (*model.Product, error) {
	if update.Empty() {
		return nil, domainErrors.NewValidationError("update")
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, domainErrors.NewValidationError("price")
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, domainErrors.NewValidationError("stock_quantity")
	}
	return u.products.Update(ctx, ref, update)
}

func (u *ProductUseCase) Delete(ctx context.Context, ref string) error {
	return u.products.Delete(ctx, ref)
}

func (u *ProductUseCase) Count(ctx context.Context) (int64, error) {
	return u.products.Count(ctx)
}

// GenerateDescription produces marketing copy for a product through the
// configured AI provider, falling back to a template when none is set.
func (u *ProductUseCase) GenerateDescription(ctx context.Context, ref string, opts ai.GenerateOptions) (string, error) {
	product, err := u.products.Get(ctx, ref)
	if err != nil {
		return "", err
	}
	cfg, err := u.integrations.AIConfig(ctx)
	if err != nil {
		return "", err
	}
	return u.generator.GenerateDescription(ctx, *product, opts, cfg)
}

// --- CSV import ---

// ImportError reports a rejected CSV row. Row numbers are 1-based and count
// the header line.
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a CSV bulk import.
type ImportResult struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Total   int           `json:"total"`
	Errors  []ImportError `json:"errors,omitempty"`
}

var priceNumberRe = regexp.MustCompile(`[\d.]+`)

// ParsePrice extracts the first number from a price cell, tolerating currency
// signs and range notation like "$12.00 - $18.00".
func ParsePrice(cell string) (float64, bool) {
	cleaned := strings.ReplaceAll(cell, "$", "")
	match := priceNumberRe.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	var price float64
	if _, err := fmt.Sscanf(match, "%f", &price); err != nil || price == 0 {
		return 0, false
	}
	return price, true
}

// ImportCSV reads header-keyed product rows and upserts them by SKU.
func (u *ProductUseCase) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, domainErrors.NewValidationError("csv")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	cell := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	result := &ImportResult{}
	rowNumber := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Row: rowNumber, Message: "malformed row"})
			continue
		}

		sku := cell(record, "SKU")
		if sku == "" {
			result.Errors = append(result.Errors, ImportError{Row: rowNumber, Message: "SKU is required"})
			continue
		}
		name := cell(record, "Name")
		if name == "" {
			result.Errors = append(result.Errors, ImportError{Row: rowNumber, Message: "Name is required"})
			continue
		}

		priceCell := cell(record, "Price")
		if priceCell == "" {
			priceCell = cell(record, "Est_Retail_Price")
		}
		price, ok := ParsePrice(priceCell)
		if !ok {
			result.Errors = append(result.Errors, ImportError{Row: rowNumber, Message: "Valid price is required"})
			continue
		}

		category := cell(record, "Category")
		if category == "" {
			result.Errors = append(result.Errors, ImportError{Row: rowNumber, Message: "Category is required"})
			continue
		}

		var images []string
		if v := cell(record, "Old_Photo_Name"); v != "" {
			images = append(images, v)
		}
		if v := cell(record, "New_Photo_Name"); v != "" {
			images = append(images, v)
		}

		product := model.Product{
			SKU:         sku,
			Name:        name,
			Description: cell(record, "Description"),
			Price:       price,
			Category:    category,
			MetalType:   cell(record, "Metal"),
			Images:      images,
		}

		existing, err := u.products.ResolveSKUs(ctx, []string{sku})
		if err != nil {
			return nil, err
		}

		if _, err := u.products.UpsertBySKU(ctx, []model.Product{product}); err != nil {
			result.Errors = append(result.Errors, ImportError{Row: rowNumber, Message: "failed to save row"})
			continue
		}
		if _, found := existing[sku]; found {
			result.Updated++
		} else {
			result.Created++
		}
	}

	result.Total = result.Created + result.Updated
	return result, nil
}

// --- Bulk image matching ---

// UploadedImage pairs an original filename with its served URL.
type UploadedImage struct {
	Name string
	URL  string
}

// MatchResult summarizes a bulk image upload.
type MatchResult struct {
	Uploaded  int      `json:"uploaded"`
	Matched   int      `json:"matched"`
	Unmatched []string `json:"unmatched,omitempty"`
}

type imageSlot struct {
	productID string
	index     int
}

// MatchImages replaces product image placeholders with uploaded file URLs.
// Placeholders match on the exact filename or the name without extension.
func (u *ProductUseCase) MatchImages(ctx context.Context, uploads []UploadedImage) (*MatchResult, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return nil, err
	}

	slots := make(map[string]imageSlot)
	imagesByProduct := make(map[string][]string)
	for _, product := range products {
		imagesByProduct[product.ID] = append([]string(nil), product.Images...)
		for i, img := range product.Images {
			slots[img] = imageSlot{productID: product.ID, index: i}
			if ext := filepath.Ext(img); ext != "" {
				slots[strings.TrimSuffix(img, ext)] = imageSlot{productID: product.ID, index: i}
			}
		}
	}

	result := &MatchResult{Uploaded: len(uploads)}
	touched := make(map[string]bool)
	for _, upload := range uploads {
		slot, ok := slots[upload.Name]
		if !ok {
			bare := strings.TrimSuffix(upload.Name, filepath.Ext(upload.Name))
			slot, ok = slots[bare]
		}
		if !ok {
			result.Unmatched = append(result.Unmatched, upload.Name)
			continue
		}
		imagesByProduct[slot.productID][slot.index] = upload.URL
		touched[slot.productID] = true
		result.Matched++
	}

	for productID := range touched {
		if err := u.products.ReplaceImages(ctx, productID, imagesByProduct[productID]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// --- Shopify sync and push ---

// SyncShopify pulls the marketplace feed and upserts listings by SKU.
// Listings without a SKU, or with a SKU already seen in the feed, fall back
// to the marketplace id so the upsert stays keyed uniquely.
func (u *ProductUseCase) SyncShopify(ctx context.Context) (int, error) {
	cfg, err := u.integrations.ShopifyConfig(ctx)
	if err != nil {
		return 0, err
	}
	if !cfg.Valid() {
		return 0, shopify.ErrNotConfigured
	}

	listings, err := u.shopify.FetchProducts(ctx, cfg)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(listings))
	payload := make([]model.Product, 0, len(listings))
	for _, listing := range listings {
		sku := listing.SKU
		if sku == "" || seen[sku] {
			sku = listing.ID
		}
		seen[sku] = true
		listing.SKU = sku
		listing.ID = ""
		payload = append(payload, listing)
	}

	return u.products.UpsertBySKU(ctx, payload)
}

// PushToShopify creates a local product as a marketplace listing.
func (u *ProductUseCase) PushToShopify(ctx context.Context, ref string) (*shopify.CreatedProduct, error) {
	cfg, err := u.integrations.ShopifyConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Valid() {
		return nil, shopify.ErrNotConfigured
	}

	product, err := u.products.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return u.shopify.CreateProduct(ctx, cfg, *product)
}
