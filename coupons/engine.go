// Package coupons evaluates coupon eligibility and discount amounts against a
// cart snapshot and a user context. Evaluation is pure: usage counters are only
// committed by order placement.
package coupons

import (
	"errors"
	"time"

	"github.com/rajat290/obeyyo-api/models"
)

// Rejection reasons surfaced to clients via InvalidCouponError.
const (
	ReasonExpired              = "EXPIRED"
	ReasonUsageLimitReached    = "USAGE_LIMIT_REACHED"
	ReasonUserLimitReached     = "USER_LIMIT_REACHED"
	ReasonOrderValueOutOfRange = "ORDER_VALUE_OUT_OF_RANGE"
	ReasonUserNotEligible      = "USER_NOT_ELIGIBLE"
	ReasonNoEligibleItems      = "NO_ELIGIBLE_ITEMS"
	ReasonInactive             = "INACTIVE"
)

// ErrConflictingRestrictions flags a coupon declaring both newUsersOnly and
// existingUsersOnly. That combination is a caller error, never resolved here.
var ErrConflictingRestrictions = errors.New("coupon declares both newUsersOnly and existingUsersOnly")

// LineItem is the slice of a cart line the engine needs for scoping.
type LineItem struct {
	ProductID  uint
	CategoryID uint
	BrandID    uint
	LineTotal  float64
}

// CartSnapshot is the cart state a coupon is evaluated against.
type CartSnapshot struct {
	Subtotal float64
	Items    []LineItem
}

// UserContext carries the identity facts the restriction checks consume.
type UserContext struct {
	OrderCount int // completed (non-cancelled) orders by this user
	CouponUses int // times this user already redeemed this coupon
}

// Evaluation is the engine's verdict.
type Evaluation struct {
	Applicable     bool
	Reason         string
	DiscountAmount float64
}

func reject(reason string) Evaluation {
	return Evaluation{Applicable: false, Reason: reason}
}

// Evaluate runs the ordered eligibility checks, short-circuiting at the first
// failure, and computes the discount on the eligible subset's subtotal.
func Evaluate(c *models.Coupon, snap CartSnapshot, user UserContext, now time.Time) (Evaluation, error) {
	if c.NewUsersOnly && c.ExistingUsersOnly {
		return Evaluation{}, ErrConflictingRestrictions
	}

	if !c.Active {
		return reject(ReasonInactive), nil
	}
	if !now.Before(c.ExpiryDate) {
		return reject(ReasonExpired), nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return reject(ReasonUsageLimitReached), nil
	}
	if c.UsageLimitPerUser != nil && user.CouponUses >= *c.UsageLimitPerUser {
		return reject(ReasonUserLimitReached), nil
	}
	if c.MinOrderValue != nil && snap.Subtotal < *c.MinOrderValue {
		return reject(ReasonOrderValueOutOfRange), nil
	}
	if c.MaxOrderValue != nil && snap.Subtotal > *c.MaxOrderValue {
		return reject(ReasonOrderValueOutOfRange), nil
	}

	if c.NewUsersOnly && user.OrderCount != 0 {
		return reject(ReasonUserNotEligible), nil
	}
	if c.ExistingUsersOnly && user.OrderCount == 0 {
		return reject(ReasonUserNotEligible), nil
	}
	if c.FirstOrderOnly && user.OrderCount != 0 {
		return reject(ReasonUserNotEligible), nil
	}
	if c.MinOrdersRequired != nil && user.OrderCount < *c.MinOrdersRequired {
		return reject(ReasonUserNotEligible), nil
	}

	eligible := eligibleSubtotal(c, snap.Items)
	if eligible <= 0 {
		return reject(ReasonNoEligibleItems), nil
	}

	var raw float64
	switch c.DiscountType {
	case models.DiscountTypePercentage:
		raw = eligible * c.DiscountValue / 100
	default:
		raw = c.DiscountValue
	}
	if c.MaxDiscount != nil && raw > *c.MaxDiscount {
		raw = *c.MaxDiscount
	}
	if raw > eligible {
		raw = eligible
	}
	return Evaluation{Applicable: true, DiscountAmount: raw}, nil
}

// eligibleSubtotal applies allow-lists (union across categories, brands and
// products; empty allow-lists admit everything) and then deny-lists, which take
// precedence, returning the subtotal of the surviving lines.
func eligibleSubtotal(c *models.Coupon, items []LineItem) float64 {
	hasAllowList := len(c.ApplicableCategories)+len(c.ApplicableBrands)+len(c.ApplicableProducts) > 0

	var sum float64
	for _, it := range items {
		if hasAllowList {
			allowed := c.ApplicableCategories.Contains(it.CategoryID) ||
				c.ApplicableBrands.Contains(it.BrandID) ||
				c.ApplicableProducts.Contains(it.ProductID)
			if !allowed {
				continue
			}
		}
		if c.ExcludedCategories.Contains(it.CategoryID) ||
			c.ExcludedBrands.Contains(it.BrandID) ||
			c.ExcludedProducts.Contains(it.ProductID) {
			continue
		}
		sum += it.LineTotal
	}
	return sum
}
