package dto

import "time"

// LineItemRequest is a cart line as sent by the storefront.
type LineItemRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
}

// ShippingRequest carries checkout shipping fields. Presence is checked in
// the order use case so every missing field is reported at once.
type ShippingRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items    []LineItemRequest `json:"items" validate:"min=1,dive"`
	Shipping ShippingRequest   `json:"shipping"`
}

// CheckoutResponse returns what the client needs to confirm payment.
type CheckoutResponse struct {
	ClientSecret string `json:"clientSecret"`
	OrderID      string `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
}

// OrderItemResponse is a stored order line.
type OrderItemResponse struct {
	ID           string  `json:"id"`
	ProductID    *string `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
}

// OrderResponse is a stored order with its money figures.
type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	Email          string              `json:"email"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	ZipCode        string              `json:"zip_code"`
	Subtotal       float64             `json:"subtotal"`
	BundleDiscount float64             `json:"bundle_discount"`
	Tax            float64             `json:"tax"`
	Shipping       float64             `json:"shipping"`
	Total          float64             `json:"total"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []OrderItemResponse `json:"items,omitempty"`
}

// PaymentIntentRequest creates a bare payment intent.
type PaymentIntentRequest struct {
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency"`
}
