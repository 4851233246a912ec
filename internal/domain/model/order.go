package model

import "time"

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus describes the state of the charge behind an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is a persisted customer order. Monetary fields are rounded to two
// decimals at persistence time; they are always recomputed server-side from
// the submitted line items.
type Order struct {
	ID              string
	Number          string
	Email           string
	FirstName       string
	LastName        string
	Address         string
	City            string
	State           string
	ZipCode         string
	Subtotal        float64
	BundleDiscount  float64
	Tax             float64
	Shipping        float64
	Total           float64
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentIntentID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is a line item owned by exactly one order. ProductID is nil when
// the submitted reference could not be resolved to a canonical product;
// ProductPrice is a snapshot taken at order time and is never recomputed from
// the live catalog.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    *string
	ProductName  string
	ProductPrice float64
	Quantity     int
}
