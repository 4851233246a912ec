package usecase

import (
	"math"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

const (
	// BundleThreshold is the combined item quantity that triggers the bundle rate.
	BundleThreshold = 3
	// BundleRate is applied to the subtotal once the threshold is met.
	BundleRate = 0.15
	// TaxRate is applied to the discounted base.
	TaxRate = 0.08
)

// ComputeTotals derives order money figures from cart lines. Values keep full
// float precision; rounding happens only at persistence and display.
func ComputeTotals(items []model.LineItem) model.Totals {
	var subtotal float64
	var quantity int
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
		quantity += item.Quantity
	}

	var discount float64
	if quantity >= BundleThreshold {
		discount = subtotal * BundleRate
	}

	taxable := subtotal - discount
	tax := taxable * TaxRate

	return model.Totals{
		Subtotal:       subtotal,
		BundleDiscount: discount,
		Tax:            tax,
		Shipping:       0,
		Total:          taxable + tax,
	}
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy with every figure rounded to cents.
func Rounded(t model.Totals) model.Totals {
	return model.Totals{
		Subtotal:       Round2(t.Subtotal),
		BundleDiscount: Round2(t.BundleDiscount),
		Tax:            Round2(t.Tax),
		Shipping:       Round2(t.Shipping),
		Total:          Round2(t.Total),
	}
}

// AmountInCents converts a total to the smallest currency unit for the
// payment processor.
func AmountInCents(total float64) int64 {
	return int64(math.Round(total * 100))
}
