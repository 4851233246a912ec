package model

import "time"

// Product is a catalog entry. ID is the store's canonical identifier; SKU is
// the merchant or marketplace assigned code used for imports and sync.
type Product struct {
	ID             string
	SKU            string
	Name           string
	Description    string
	Price          float64
	Category       string
	MetalType      string
	Gemstone       string
	Weight         float64
	Images         []string
	StockQuantity  int
	IsFeatured     bool
	IsBundle       bool
	BundleDiscount float64
	MinPrice       *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductUpdate describes a partial product update; nil fields are untouched.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	Stock       *int
	Images      *[]string
	IsBundle    *bool
	MinPrice    *float64
}

// Empty reports whether the update carries no changes.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil &&
		u.Stock == nil && u.Images == nil && u.IsBundle == nil && u.MinPrice == nil
}
