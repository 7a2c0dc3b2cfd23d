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

// PUT /admin/orders/:orderID/status
//
// Admin-driven fulfillment transitions go through the lifecycle machine; an
// out-of-order request leaves the order untouched and returns 409.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var req validation.StatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if fieldErrs := validation.ValidateStatusUpdate(&req); len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"code":   models.ErrCodeValidationFailed,
				"fields": fieldErrs,
			})
			return
		}

		next := models.OrderStatus(req.Status)
		var order models.Order
		err := cartControllers.RunSerialized(db, func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", orderID).First(&order).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			// an admin cancel carries the same side-effects as a user cancel:
			// stock release and coupon redemption rollback
			if next == models.OrderStatusCancelled {
				return cancelOrderTx(tx, &order, "", time.Now())
			}
			if err := order.Transition(next, time.Now()); err != nil {
				return err
			}
			return tx.Omit(clause.Associations).Save(&order).Error
		})
		if err != nil {
			respondOrderError(c, err)
			return
		}

		broadcastOrderEvent("order.status_updated", &order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}
