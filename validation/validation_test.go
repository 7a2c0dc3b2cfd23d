package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fields(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func floatPtr(v float64) *float64    { return &v }
func boolPtr(v bool) *bool           { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestRun_CollectsAllFailures(t *testing.T) {
	errs := Run(
		NotEmpty("a", ""),
		NotEmpty("b", "ok"),
		LenBetween("c", "x", 2, 5),
		IntBetween("d", 9, 1, 5),
	)
	assert.Equal(t, []string{"a", "c", "d"}, fields(errs))
}

func TestCouponCreate_Valid(t *testing.T) {
	req := &CouponRequest{
		Code:          "SAVE50",
		DiscountType:  "fixed",
		DiscountValue: floatPtr(500),
		MinOrderValue: floatPtr(1000),
		ExpiryDate:    timePtr(now.Add(24 * time.Hour)),
	}
	assert.Empty(t, ValidateCouponCreate(req, now))
}

func TestCouponCreate_AllFailuresReported(t *testing.T) {
	req := &CouponRequest{
		Code:         "bad code!",
		DiscountType: "bogo",
	}
	errs := ValidateCouponCreate(req, now)

	// code format, discount type, missing value, missing expiry — all at once
	got := fields(errs)
	assert.Contains(t, got, "code")
	assert.Contains(t, got, "discount_type")
	assert.Contains(t, got, "discount_value")
	assert.Contains(t, got, "expiry_date")
	require.GreaterOrEqual(t, len(errs), 4)
}

func TestCouponCreate_PercentageOverHundred(t *testing.T) {
	req := &CouponRequest{
		Code:          "MEGA",
		DiscountType:  "percentage",
		DiscountValue: floatPtr(150),
		ExpiryDate:    timePtr(now.Add(time.Hour)),
	}
	errs := ValidateCouponCreate(req, now)
	require.Len(t, errs, 1)
	assert.Equal(t, "discount_value", errs[0].Field)
}

func TestCouponCreate_ExpiryMustBeFuture(t *testing.T) {
	req := &CouponRequest{
		Code:          "OLD10",
		DiscountType:  "fixed",
		DiscountValue: floatPtr(10),
		ExpiryDate:    timePtr(now.Add(-time.Hour)),
	}
	errs := ValidateCouponCreate(req, now)
	require.Len(t, errs, 1)
	assert.Equal(t, "expiry_date", errs[0].Field)
}

func TestCouponCreate_ConflictingUserRestrictions(t *testing.T) {
	req := &CouponRequest{
		Code:              "WHO",
		DiscountType:      "fixed",
		DiscountValue:     floatPtr(10),
		ExpiryDate:        timePtr(now.Add(time.Hour)),
		NewUsersOnly:      boolPtr(true),
		ExistingUsersOnly: boolPtr(true),
	}
	errs := ValidateCouponCreate(req, now)
	require.Len(t, errs, 1)
	assert.Equal(t, "new_users_only", errs[0].Field)
}

func TestCouponCreate_OrderValueBounds(t *testing.T) {
	req := &CouponRequest{
		Code:          "RANGE",
		DiscountType:  "fixed",
		DiscountValue: floatPtr(10),
		ExpiryDate:    timePtr(now.Add(time.Hour)),
		MinOrderValue: floatPtr(2000),
		MaxOrderValue: floatPtr(1000),
	}
	errs := ValidateCouponCreate(req, now)
	require.Len(t, errs, 1)
	assert.Equal(t, "max_order_value", errs[0].Field)
}

func TestCouponUpdate_EverythingOptional(t *testing.T) {
	assert.Empty(t, ValidateCouponUpdate(&CouponRequest{}, now))

	// but supplied values are still checked
	req := &CouponRequest{
		DiscountType:  "percentage",
		DiscountValue: floatPtr(120),
	}
	errs := ValidateCouponUpdate(req, now)
	require.Len(t, errs, 1)
	assert.Equal(t, "discount_value", errs[0].Field)
}

func TestBannerCreate_DateOrder(t *testing.T) {
	start := now
	end := now.Add(-time.Hour)
	req := &BannerRequest{
		Title:     "Summer Sale",
		ImageURL:  "https://cdn.example.com/sale.png",
		StartDate: &start,
		EndDate:   &end,
	}
	errs := ValidateBannerCreate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "end_date", errs[0].Field)

	// equal dates are rejected too: end must be strictly after start
	end = start
	req.EndDate = &end
	assert.Len(t, ValidateBannerCreate(req), 1)

	end = start.Add(time.Hour)
	req.EndDate = &end
	assert.Empty(t, ValidateBannerCreate(req))
}

func TestBannerCreate_RequiredFields(t *testing.T) {
	errs := ValidateBannerCreate(&BannerRequest{})
	got := fields(errs)
	assert.Contains(t, got, "title")
	assert.Contains(t, got, "image_url")
}

func TestOrderCreate(t *testing.T) {
	req := &OrderCreateRequest{
		ShippingAddressID: 7,
		PaymentMethod:     "razorpay",
	}
	assert.Empty(t, ValidateOrderCreate(req))

	req = &OrderCreateRequest{PaymentMethod: "crypto"}
	errs := ValidateOrderCreate(req)
	got := fields(errs)
	assert.Contains(t, got, "shipping_address_id")
	assert.Contains(t, got, "payment_method")
}

func TestCancelOrder_ReasonCap(t *testing.T) {
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	errs := ValidateCancelOrder(&CancelOrderRequest{Reason: string(long)})
	require.Len(t, errs, 1)
	assert.Equal(t, "reason", errs[0].Field)

	assert.Empty(t, ValidateCancelOrder(&CancelOrderRequest{}))
}

func TestReviewCreate(t *testing.T) {
	assert.Empty(t, ValidateReviewCreate(&ReviewRequest{ProductID: 1, Rating: 5}))

	errs := ValidateReviewCreate(&ReviewRequest{Rating: 6})
	got := fields(errs)
	assert.Contains(t, got, "product_id")
	assert.Contains(t, got, "rating")
}

func TestStatusUpdate(t *testing.T) {
	assert.Empty(t, ValidateStatusUpdate(&StatusUpdateRequest{Status: "shipped"}))

	errs := ValidateStatusUpdate(&StatusUpdateRequest{Status: "teleported"})
	require.Len(t, errs, 1)
	assert.Equal(t, "status", errs[0].Field)
}

func TestPositiveID(t *testing.T) {
	assert.Empty(t, Run(PositiveID("id", "42")))
	assert.Len(t, Run(PositiveID("id", "0")), 1)
	assert.Len(t, Run(PositiveID("id", "abc")), 1)
	assert.Len(t, Run(PositiveID("id", "-3")), 1)
}
