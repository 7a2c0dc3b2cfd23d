package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/rajat290/obeyyo-api/controllers/cart"
	"github.com/rajat290/obeyyo-api/models"
	"github.com/rajat290/obeyyo-api/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cancelOrderTx releases the order's reserved stock, rolls back any coupon
// redemption counted at placement and marks the order cancelled. The caller
// must hold the order row under FOR UPDATE. Both user-initiated cancellation
// and an admin moving the status to cancelled go through here so the
// side-effects can never be skipped.
func cancelOrderTx(tx *gorm.DB, order *models.Order, reason string, now time.Time) error {
	if err := order.CanTransition(models.OrderStatusCancelled, now); err != nil {
		return err
	}

	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}
	// release reserved inventory
	for _, item := range items {
		if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return err
		}
	}

	// roll back the coupon usage counted at placement
	if order.CouponCode != nil {
		var redemption models.CouponRedemption
		err := tx.Where("order_id = ?", order.ID).First(&redemption).Error
		if err == nil {
			if err := tx.Model(&models.Coupon{}).Where("id = ?", redemption.CouponID).
				Update("used_count", gorm.Expr("used_count - 1")).Error; err != nil {
				return err
			}
			if err := tx.Delete(&redemption).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	order.Status = models.OrderStatusCancelled
	order.CancelReason = reason
	return tx.Omit(clause.Associations).Save(order).Error
}

// POST /orders/:orderID/cancel
//
// Cancellation is allowed until the order ships. It restores the reserved
// stock and rolls back the coupon redemption counted at placement, all in one
// transaction so nothing half-applies.
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		orderID := c.Param("orderID")

		var req validation.CancelOrderRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}
		if fieldErrs := validation.ValidateCancelOrder(&req); len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"code":   models.ErrCodeValidationFailed,
				"fields": fieldErrs,
			})
			return
		}

		var order models.Order
		err := cartControllers.RunSerialized(db, func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			return cancelOrderTx(tx, &order, req.Reason, time.Now())
		})
		if err != nil {
			respondOrderError(c, err)
			return
		}

		broadcastOrderEvent("order.cancelled", &order)
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": order})
	}
}
