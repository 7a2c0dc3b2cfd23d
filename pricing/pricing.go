// Package pricing computes cart/order money totals from line items and an
// already-evaluated discount. Keeping it free of persistence lets the same
// arithmetic serve cart recomputes and order placement.
package pricing

import (
	"math"

	"github.com/rajat290/obeyyo-api/models"
)

const (
	// MaxCartQuantity caps a single cart line; excess added quantity is dropped.
	MaxCartQuantity = 10

	// FreeShippingMinAmount is the subtotal at which shipping becomes free.
	FreeShippingMinAmount = 500.0

	// ShippingCharge applies below the free-shipping threshold.
	ShippingCharge = 50.0

	// TaxPercentage is GST applied on the pre-discount subtotal.
	TaxPercentage = 18.0
)

// Totals is the monetary breakdown of a cart or order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Subtotal sums line totals over cart items.
func Subtotal(items []models.CartItem) float64 {
	var sum float64
	for i := range items {
		sum += items[i].LineTotal()
	}
	return sum
}

// Compute builds the full breakdown for a subtotal and discount. An empty cart
// yields all zeros; the discount never drives the total below zero.
func Compute(subtotal, discount float64) Totals {
	if subtotal <= 0 {
		return Totals{}
	}
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	shipping := ShippingCharge
	if subtotal >= FreeShippingMinAmount {
		shipping = 0
	}
	tax := math.Round(subtotal * TaxPercentage / 100)

	total := subtotal - discount + shipping + tax
	if total < 0 {
		total = 0
	}
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}

// ClampQuantity merges an added quantity into an existing line, capping at
// MaxCartQuantity. Excess is silently dropped.
func ClampQuantity(existing, added int) int {
	q := existing + added
	if q > MaxCartQuantity {
		return MaxCartQuantity
	}
	return q
}
