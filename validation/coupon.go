package validation

import (
	"regexp"
	"time"

	"github.com/rajat290/obeyyo-api/models"
)

var couponCodeRe = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// CouponRequest is the admin create/update payload. Pointer fields distinguish
// "absent" from zero so the update validator can treat everything as optional.
type CouponRequest struct {
	Code              string     `json:"code"`
	Description       string     `json:"description"`
	DiscountType      string     `json:"discount_type"`
	DiscountValue     *float64   `json:"discount_value"`
	MaxDiscount       *float64   `json:"max_discount"`
	MinOrderValue     *float64   `json:"min_order_value"`
	MaxOrderValue     *float64   `json:"max_order_value"`
	UsageLimit        *int       `json:"usage_limit"`
	UsageLimitPerUser *int       `json:"usage_limit_per_user"`
	ExpiryDate        *time.Time `json:"expiry_date"`

	ApplicableCategories []uint `json:"applicable_categories"`
	ApplicableBrands     []uint `json:"applicable_brands"`
	ApplicableProducts   []uint `json:"applicable_products"`
	ExcludedCategories   []uint `json:"excluded_categories"`
	ExcludedBrands       []uint `json:"excluded_brands"`
	ExcludedProducts     []uint `json:"excluded_products"`

	NewUsersOnly      *bool `json:"new_users_only"`
	ExistingUsersOnly *bool `json:"existing_users_only"`
	FirstOrderOnly    *bool `json:"first_order_only"`
	MinOrdersRequired *int  `json:"min_orders_required"`

	Active *bool `json:"active"`
}

// ValidateCouponCreate runs every check and returns the full failure list.
func ValidateCouponCreate(req *CouponRequest, now time.Time) []FieldError {
	rules := []Rule{
		NotEmpty("code", req.Code),
		Matches("code", req.Code, couponCodeRe, "must be 3-20 uppercase alphanumeric characters"),
		NotEmpty("discount_type", req.DiscountType),
		OneOf("discount_type", req.DiscountType,
			string(models.DiscountTypePercentage), string(models.DiscountTypeFixed)),
		Custom("discount_value", req.DiscountValue != nil, "discount_value is required"),
		Custom("expiry_date", req.ExpiryDate != nil, "expiry_date is required"),
	}
	rules = append(rules, couponCommonRules(req, now)...)
	return Run(rules...)
}

// ValidateCouponUpdate reuses the create checks but treats every field as
// optional; only values actually supplied are checked.
func ValidateCouponUpdate(req *CouponRequest, now time.Time) []FieldError {
	rules := []Rule{
		Matches("code", req.Code, couponCodeRe, "must be 3-20 uppercase alphanumeric characters"),
	}
	rules = append(rules, couponCommonRules(req, now)...)
	return Run(rules...)
}

func couponCommonRules(req *CouponRequest, now time.Time) []Rule {
	var rules []Rule

	if req.DiscountValue != nil {
		rules = append(rules, NonNegative("discount_value", *req.DiscountValue))
		if req.DiscountType == string(models.DiscountTypePercentage) {
			rules = append(rules, Custom("discount_value", *req.DiscountValue <= 100,
				"percentage discount_value must be at most 100"))
		}
	}
	if req.MaxDiscount != nil {
		rules = append(rules, NonNegative("max_discount", *req.MaxDiscount))
	}
	if req.MinOrderValue != nil {
		rules = append(rules, NonNegative("min_order_value", *req.MinOrderValue))
	}
	if req.MaxOrderValue != nil {
		rules = append(rules, NonNegative("max_order_value", *req.MaxOrderValue))
		if req.MinOrderValue != nil {
			rules = append(rules, Custom("max_order_value", *req.MaxOrderValue >= *req.MinOrderValue,
				"max_order_value must not be below min_order_value"))
		}
	}
	if req.UsageLimit != nil {
		rules = append(rules, Custom("usage_limit", *req.UsageLimit > 0, "usage_limit must be positive"))
	}
	if req.UsageLimitPerUser != nil {
		rules = append(rules, Custom("usage_limit_per_user", *req.UsageLimitPerUser > 0,
			"usage_limit_per_user must be positive"))
	}
	if req.MinOrdersRequired != nil {
		rules = append(rules, Custom("min_orders_required", *req.MinOrdersRequired >= 0,
			"min_orders_required must not be negative"))
	}
	if req.ExpiryDate != nil {
		rules = append(rules, FutureDate("expiry_date", *req.ExpiryDate, now))
	}
	if req.NewUsersOnly != nil && req.ExistingUsersOnly != nil {
		rules = append(rules, Custom("new_users_only",
			!(*req.NewUsersOnly && *req.ExistingUsersOnly),
			"new_users_only and existing_users_only cannot both be set"))
	}
	return rules
}
