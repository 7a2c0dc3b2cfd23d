package cartControllers

import (
	"errors"
	"time"

	"github.com/rajat290/obeyyo-api/coupons"
	"github.com/rajat290/obeyyo-api/models"
	"github.com/rajat290/obeyyo-api/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuildSnapshot turns the cart's items into the engine's view of the cart,
// resolving each line's category and brand for coupon scoping.
func BuildSnapshot(tx *gorm.DB, items []models.CartItem) (coupons.CartSnapshot, error) {
	snap := coupons.CartSnapshot{Subtotal: pricing.Subtotal(items)}
	if len(items) == 0 {
		return snap, nil
	}

	ids := make([]uint, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ProductID)
	}
	var products []models.Product
	if err := tx.Select("id", "category_id", "brand_id").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return snap, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for i := range items {
		p := byID[items[i].ProductID]
		snap.Items = append(snap.Items, coupons.LineItem{
			ProductID:  items[i].ProductID,
			CategoryID: p.CategoryID,
			BrandID:    p.BrandID,
			LineTotal:  items[i].LineTotal(),
		})
	}
	return snap, nil
}

// LoadUserContext gathers the identity facts the coupon restriction checks need.
func LoadUserContext(tx *gorm.DB, couponID uint, userID string) (coupons.UserContext, error) {
	var ctx coupons.UserContext

	var orderCount int64
	if err := tx.Model(&models.Order{}).
		Where("user_id = ? AND status <> ?", userID, models.OrderStatusCancelled).
		Count(&orderCount).Error; err != nil {
		return ctx, err
	}
	var uses int64
	if err := tx.Model(&models.CouponRedemption{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&uses).Error; err != nil {
		return ctx, err
	}

	ctx.OrderCount = int(orderCount)
	ctx.CouponUses = int(uses)
	return ctx, nil
}

// RecomputeCart reloads the cart's items inside tx, re-evaluates any applied
// coupon against the new state, refreshes the totals and saves the cart.
// It reports whether an applied coupon had to be detached.
func RecomputeCart(tx *gorm.DB, cart *models.Cart) (couponInvalidated bool, err error) {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cart.CartID).Order("added_at").Find(&items).Error; err != nil {
		return false, err
	}
	cart.Items = items

	subtotal := pricing.Subtotal(items)
	discount := 0.0

	if cart.CouponCode != "" {
		var coupon models.Coupon
		err := tx.Where("code = ?", cart.CouponCode).First(&coupon).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cart.CouponCode = ""
			couponInvalidated = true
		case err != nil:
			return false, err
		default:
			snap, err := BuildSnapshot(tx, items)
			if err != nil {
				return false, err
			}
			userCtx, err := LoadUserContext(tx, coupon.ID, cart.UserID)
			if err != nil {
				return false, err
			}
			eval, err := coupons.Evaluate(&coupon, snap, userCtx, time.Now())
			if err != nil || !eval.Applicable {
				cart.CouponCode = ""
				couponInvalidated = true
			} else {
				discount = eval.DiscountAmount
			}
		}
	}

	totals := pricing.Compute(subtotal, discount)
	cart.Subtotal = totals.Subtotal
	cart.Discount = totals.Discount
	cart.Shipping = totals.Shipping
	cart.Tax = totals.Tax
	cart.Total = totals.Total

	if err := tx.Omit(clause.Associations).Save(cart).Error; err != nil {
		return couponInvalidated, err
	}
	return couponInvalidated, nil
}
