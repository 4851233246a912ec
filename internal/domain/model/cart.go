package model

// LineItem is a transient cart entry submitted by the checkout client.
// ProductRef may be a canonical product id, a marketplace SKU, or empty.
type LineItem struct {
	ProductRef string
	Name       string
	UnitPrice  float64
	Quantity   int
}

// ShippingInfo carries the customer contact and delivery address for an order.
// All fields are required before an order may be created.
type ShippingInfo struct {
	Email     string
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	ZipCode   string
}

// Totals is the server-computed price breakdown for a set of line items.
// Values are kept at full precision through the computation chain and rounded
// only where persisted or displayed.
type Totals struct {
	Subtotal       float64
	BundleDiscount float64
	Tax            float64
	Shipping       float64
	Total          float64
}
