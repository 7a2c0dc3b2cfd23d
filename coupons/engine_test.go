package coupons

import (
	"testing"
	"time"

	"github.com/rajat290/obeyyo-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func baseCoupon() *models.Coupon {
	return &models.Coupon{
		Code:          "SAVE50",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 500,
		ExpiryDate:    now.Add(24 * time.Hour),
		Active:        true,
	}
}

func snapshot(subtotal float64, items ...LineItem) CartSnapshot {
	if items == nil {
		items = []LineItem{{ProductID: 1, CategoryID: 1, BrandID: 1, LineTotal: subtotal}}
	}
	return CartSnapshot{Subtotal: subtotal, Items: items}
}

func TestEvaluate_Applicable(t *testing.T) {
	eval, err := Evaluate(baseCoupon(), snapshot(1200), UserContext{}, now)
	require.NoError(t, err)
	assert.True(t, eval.Applicable)
	assert.Equal(t, 500.0, eval.DiscountAmount)
}

func TestEvaluate_Expired(t *testing.T) {
	c := baseCoupon()
	c.ExpiryDate = now.Add(-time.Minute)

	eval, err := Evaluate(c, snapshot(1200), UserContext{}, now)
	require.NoError(t, err)
	assert.False(t, eval.Applicable)
	assert.Equal(t, ReasonExpired, eval.Reason)
}

func TestEvaluate_ExpiryBoundaryIsExclusive(t *testing.T) {
	c := baseCoupon()
	c.ExpiryDate = now // now < expiry must hold strictly

	eval, err := Evaluate(c, snapshot(1200), UserContext{}, now)
	require.NoError(t, err)
	assert.Equal(t, ReasonExpired, eval.Reason)
}

func TestEvaluate_Inactive(t *testing.T) {
	c := baseCoupon()
	c.Active = false

	eval, err := Evaluate(c, snapshot(1200), UserContext{}, now)
	require.NoError(t, err)
	assert.Equal(t, ReasonInactive, eval.Reason)
}

func TestEvaluate_UsageLimits(t *testing.T) {
	c := baseCoupon()
	c.UsageLimit = intPtr(100)
	c.UsedCount = 100

	eval, err := Evaluate(c, snapshot(1200), UserContext{}, now)
	require.NoError(t, err)
	assert.Equal(t, ReasonUsageLimitReached, eval.Reason)

	c = baseCoupon()
	c.UsageLimitPerUser = intPtr(1)

	eval, err = Evaluate(c, snapshot(1200), UserContext{CouponUses: 1}, now)
	require.NoError(t, err)
	assert.Equal(t, ReasonUserLimitReached, eval.Reason)

	eval, err = Evaluate(c, snapshot(1200), UserContext{CouponUses: 0}, now)
	require.NoError(t, err)
	assert.True(t, eval.Applicable)
}

func TestEvaluate_OrderValueRange(t *testing.T) {
	c := baseCoupon()
	c.MinOrderValue = floatPtr(1000)

	eval, err := Evaluate(c, snapshot(800), UserContext{}, now)
	require.NoError(t, err)
	assert.False(t, eval.Applicable)
	assert.Equal(t, ReasonOrderValueOutOfRange, eval.Reason)

	eval, err = Evaluate(c, snapshot(1000), UserContext{}, now)
	require.NoError(t, err)
	assert.True(t, eval.Applicable)

	c.MaxOrderValue = floatPtr(2000)
	eval, err = Evaluate(c, snapshot(2500), UserContext{}, now)
	require.NoError(t, err)
	assert.Equal(t, ReasonOrderValueOutOfRange, eval.Reason)
}

func TestEvaluate_UserRestrictions(t *testing.T) {
	t.Run("new users only", func(t *testing.T) {
		c := baseCoupon()
		c.NewUsersOnly = true

		eval, err := Evaluate(c, snapshot(1200), UserContext{OrderCount: 3}, now)
		require.NoError(t, err)
		assert.Equal(t, ReasonUserNotEligible, eval.Reason)

		eval, err = Evaluate(c, snapshot(1200), UserContext{OrderCount: 0}, now)
		require.NoError(t, err)
		assert.True(t, eval.Applicable)
	})

	t.Run("existing users only", func(t *testing.T) {
		c := baseCoupon()
		c.ExistingUsersOnly = true

		eval, err := Evaluate(c, snapshot(1200), UserContext{OrderCount: 0}, now)
		require.NoError(t, err)
		assert.Equal(t, ReasonUserNotEligible, eval.Reason)
	})

	t.Run("first order only evaluated independently", func(t *testing.T) {
		c := baseCoupon()
		c.FirstOrderOnly = true

		eval, err := Evaluate(c, snapshot(1200), UserContext{OrderCount: 1}, now)
		require.NoError(t, err)
		assert.Equal(t, ReasonUserNotEligible, eval.Reason)
	})

	t.Run("min orders required", func(t *testing.T) {
		c := baseCoupon()
		c.MinOrdersRequired = intPtr(5)

		eval, err := Evaluate(c, snapshot(1200), UserContext{OrderCount: 4}, now)
		require.NoError(t, err)
		assert.Equal(t, ReasonUserNotEligible, eval.Reason)

		eval, err = Evaluate(c, snapshot(1200), UserContext{OrderCount: 5}, now)
		require.NoError(t, err)
		assert.True(t, eval.Applicable)
	})

	t.Run("conflicting restrictions are a caller error", func(t *testing.T) {
		c := baseCoupon()
		c.NewUsersOnly = true
		c.ExistingUsersOnly = true

		_, err := Evaluate(c, snapshot(1200), UserContext{}, now)
		assert.ErrorIs(t, err, ErrConflictingRestrictions)
	})
}

func TestEvaluate_Scoping(t *testing.T) {
	items := []LineItem{
		{ProductID: 1, CategoryID: 10, BrandID: 100, LineTotal: 700},
		{ProductID: 2, CategoryID: 20, BrandID: 200, LineTotal: 500},
	}

	t.Run("allow lists union across dimensions", func(t *testing.T) {
		c := baseCoupon()
		c.DiscountType = models.DiscountTypePercentage
		c.DiscountValue = 10
		c.ApplicableCategories = models.IDList{10}
		c.ApplicableBrands = models.IDList{200}

		// both items match: one by category, one by brand
		eval, err := Evaluate(c, snapshot(1200, items...), UserContext{}, now)
		require.NoError(t, err)
		assert.True(t, eval.Applicable)
		assert.Equal(t, 120.0, eval.DiscountAmount)
	})

	t.Run("exclusions take precedence", func(t *testing.T) {
		c := baseCoupon()
		c.DiscountType = models.DiscountTypePercentage
		c.DiscountValue = 10
		c.ApplicableCategories = models.IDList{10, 20}
		c.ExcludedProducts = models.IDList{2}

		eval, err := Evaluate(c, snapshot(1200, items...), UserContext{}, now)
		require.NoError(t, err)
		assert.True(t, eval.Applicable)
		assert.Equal(t, 70.0, eval.DiscountAmount) // only the 700 line survives
	})

	t.Run("no eligible items", func(t *testing.T) {
		c := baseCoupon()
		c.ApplicableCategories = models.IDList{99}

		eval, err := Evaluate(c, snapshot(1200, items...), UserContext{}, now)
		require.NoError(t, err)
		assert.False(t, eval.Applicable)
		assert.Equal(t, ReasonNoEligibleItems, eval.Reason)
	})

	t.Run("exclusion emptying the cart", func(t *testing.T) {
		c := baseCoupon()
		c.ExcludedCategories = models.IDList{10, 20}

		eval, err := Evaluate(c, snapshot(1200, items...), UserContext{}, now)
		require.NoError(t, err)
		assert.Equal(t, ReasonNoEligibleItems, eval.Reason)
	})
}

// FIRST30: 30% off capped at 300 on a 2000 cart → raw 600, clamped to 300.
func TestEvaluate_PercentageClampedByMaxDiscount(t *testing.T) {
	c := baseCoupon()
	c.Code = "FIRST30"
	c.DiscountType = models.DiscountTypePercentage
	c.DiscountValue = 30
	c.MaxDiscount = floatPtr(300)

	eval, err := Evaluate(c, snapshot(2000), UserContext{}, now)
	require.NoError(t, err)
	assert.True(t, eval.Applicable)
	assert.Equal(t, 300.0, eval.DiscountAmount)
}

func TestEvaluate_FixedNeverExceedsEligibleSubtotal(t *testing.T) {
	c := baseCoupon()
	c.DiscountValue = 5000

	eval, err := Evaluate(c, snapshot(1200), UserContext{}, now)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, eval.DiscountAmount)
}
