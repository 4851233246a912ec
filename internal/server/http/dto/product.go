package dto

import "time"

// ProductResponse is a catalog entry.
type ProductResponse struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	MetalType      string    `json:"metal_type"`
	Gemstone       string    `json:"gemstone"`
	Weight         float64   `json:"weight"`
	Images         []string  `json:"images"`
	StockQuantity  int       `json:"stock_quantity"`
	IsFeatured     bool      `json:"is_featured"`
	IsBundle       bool      `json:"is_bundle"`
	BundleDiscount float64   `json:"bundle_discount"`
	MinPrice       *float64  `json:"min_price,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateProductRequest is the admin product creation payload.
type CreateProductRequest struct {
	SKU            string   `json:"sku"`
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" validate:"gte=0"`
	Category       string   `json:"category"`
	MetalType      string   `json:"metal_type"`
	Gemstone       string   `json:"gemstone"`
	Weight         float64  `json:"weight"`
	Images         []string `json:"images"`
	StockQuantity  int      `json:"stock_quantity" validate:"gte=0"`
	IsFeatured     bool     `json:"is_featured"`
	IsBundle       bool     `json:"is_bundle"`
	BundleDiscount float64  `json:"bundle_discount"`
	MinPrice       *float64 `json:"min_price"`
}

// UpdateProductRequest carries a partial product update. Absent fields stay
// untouched.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	Stock       *int      `json:"stock_quantity"`
	Images      *[]string `json:"images"`
	IsBundle    *bool     `json:"is_bundle"`
	MinPrice    *float64  `json:"min_price"`
}

// GenerateDescriptionRequest selects AI generation options.
type GenerateDescriptionRequest struct {
	AgentID   string   `json:"agentId"`
	Tone      string   `json:"tone"`
	Language  string   `json:"language"`
	Keywords  []string `json:"keywords"`
	MaxLength int      `json:"maxLength"`
}
