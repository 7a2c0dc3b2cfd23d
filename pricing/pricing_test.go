package pricing

import (
	"testing"

	"github.com/rajat290/obeyyo-api/models"
	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{UnitPrice: 499, Quantity: 2},
		{UnitPrice: 202, Quantity: 1},
	}
	assert.Equal(t, 1200.0, Subtotal(items))

	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestCompute_EmptyCart(t *testing.T) {
	totals := Compute(0, 0)
	assert.Equal(t, Totals{}, totals)
}

func TestCompute_TotalIdentity(t *testing.T) {
	cases := []struct {
		name     string
		subtotal float64
		discount float64
	}{
		{"no discount below free shipping", 400, 0},
		{"no discount above free shipping", 1200, 0},
		{"with discount", 1200, 500},
		{"discount larger than subtotal", 300, 900},
		{"negative discount ignored", 800, -50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := Compute(tc.subtotal, tc.discount)
			assert.Equal(t, totals.Total, totals.Subtotal-totals.Discount+totals.Shipping+totals.Tax)
			assert.GreaterOrEqual(t, totals.Subtotal, 0.0)
			assert.GreaterOrEqual(t, totals.Discount, 0.0)
			assert.GreaterOrEqual(t, totals.Shipping, 0.0)
			assert.GreaterOrEqual(t, totals.Tax, 0.0)
			assert.GreaterOrEqual(t, totals.Total, 0.0)
		})
	}
}

func TestCompute_ShippingThreshold(t *testing.T) {
	below := Compute(FreeShippingMinAmount-1, 0)
	assert.Equal(t, ShippingCharge, below.Shipping)

	at := Compute(FreeShippingMinAmount, 0)
	assert.Equal(t, 0.0, at.Shipping)
}

// Worked checkout scenario: two line items, subtotal 1200, fixed coupon worth 500.
// Free shipping kicks in, tax is 18% of the pre-discount subtotal.
func TestCompute_FixedCouponScenario(t *testing.T) {
	totals := Compute(1200, 500)

	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 216.0, totals.Tax) // 18% of 1200
	assert.Equal(t, 916.0, totals.Total)
}

func TestCompute_TaxRounding(t *testing.T) {
	// 18% of 333 = 59.94 → rounds to 60
	totals := Compute(333, 0)
	assert.Equal(t, 60.0, totals.Tax)
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 3, ClampQuantity(1, 2))
	assert.Equal(t, MaxCartQuantity, ClampQuantity(MaxCartQuantity-1, 5))
	assert.Equal(t, MaxCartQuantity, ClampQuantity(MaxCartQuantity, 1))
}
