package cartControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajat290/obeyyo-api/coupons"
	"github.com/rajat290/obeyyo-api/models"
	"gorm.io/gorm"
)

type ApplyCouponInput struct {
	Code string `json:"code" binding:"required"`
}

// POST /user/cart/coupon
func ApplyCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}

		var input ApplyCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		code := strings.ToUpper(strings.TrimSpace(input.Code))

		var cart *models.Cart
		err := RunSerialized(db, func(tx *gorm.DB) error {
			var err error
			cart, err = lockCart(tx, userID)
			if err != nil {
				return err
			}

			var coupon models.Coupon
			if err := tx.Where("code = ?", code).First(&coupon).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &models.InvalidCouponError{Code: code, Reason: "NOT_FOUND"}
				}
				return err
			}

			var items []models.CartItem
			if err := tx.Where("cart_id = ?", cart.CartID).Find(&items).Error; err != nil {
				return err
			}
			snap, err := BuildSnapshot(tx, items)
			if err != nil {
				return err
			}
			userCtx, err := LoadUserContext(tx, coupon.ID, userID)
			if err != nil {
				return err
			}

			eval, err := coupons.Evaluate(&coupon, snap, userCtx, time.Now())
			if err != nil {
				return err
			}
			if !eval.Applicable {
				return &models.InvalidCouponError{Code: code, Reason: eval.Reason}
			}

			cart.CouponCode = coupon.Code
			_, err = RecomputeCart(tx, cart)
			return err
		})
		if err != nil {
			var ice *models.InvalidCouponError
			if errors.As(err, &ice) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":  ice.Error(),
					"code":   models.ErrCodeInvalidCoupon,
					"reason": ice.Reason,
				})
				return
			}
			respondCartError(c, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart, false))
	}
}

// DELETE /user/cart/coupon
func RemoveCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}

		var cart *models.Cart
		err := RunSerialized(db, func(tx *gorm.DB) error {
			var err error
			cart, err = lockCart(tx, userID)
			if err != nil {
				return err
			}
			// removing an absent coupon is a no-op
			cart.CouponCode = ""
			_, err = RecomputeCart(tx, cart)
			return err
		})
		if err != nil {
			respondCartError(c, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart, false))
	}
}
