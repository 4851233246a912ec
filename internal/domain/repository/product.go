package repository

import (
	"context"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

// ProductRepository describes persistence operations with catalog products.
// Methods taking a ref accept either the canonical id or a SKU; a ref that
// parses as a UUID is treated as canonical.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, ref string) (*model.Product, error)
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, ref string, update model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, ref string) error
	// UpsertBySKU inserts or replaces products keyed by SKU and returns the
	// number of affected rows.
	UpsertBySKU(ctx context.Context, products []model.Product) (int, error)
	// ResolveSKUs maps each known SKU to its canonical product id. Unknown
	// SKUs are simply absent from the result.
	ResolveSKUs(ctx context.Context, skus []string) (map[string]string, error)
	ReplaceImages(ctx context.Context, id string, images []string) error
	Count(ctx context.Context) (int64, error)
}
