package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/rajat290/obeyyo-api/controllers/cart"
	paymentControllers "github.com/rajat290/obeyyo-api/controllers/payment"
	"github.com/rajat290/obeyyo-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	Status            string `json:"status"` // gateway payment status; empty means captured
}

// callbackPaymentStatus maps the gateway's checkout callback status onto the
// order's payment axis. Anything the gateway does not report as failed counts
// as paid; the signature check has already vouched for the callback.
func callbackPaymentStatus(status string) models.PaymentStatus {
	if strings.EqualFold(status, "failed") {
		return models.PaymentStatusFailed
	}
	return models.PaymentStatusPaid
}

// POST /orders/:orderID/verify-payment
//
// The client posts the gateway's checkout callback here. The signature is
// checked before anything is touched; a mismatch leaves the order unchanged.
func VerifyPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if !paymentControllers.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrPaymentVerification.Error(),
				"code":  models.ErrCodePaymentVerification,
			})
			return
		}

		var order models.Order
		err := cartControllers.RunSerialized(db, func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND razorpay_order_id = ?", orderID, req.RazorpayOrderID).
				First(&order).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			// the payment axis only moves off pending once
			if order.PaymentStatus != models.PaymentStatusPending {
				return nil
			}
			order.PaymentStatus = callbackPaymentStatus(req.Status)
			return tx.Omit(clause.Associations).Save(&order).Error
		})
		if err != nil {
			respondOrderError(c, err)
			return
		}

		broadcastOrderEvent("order.payment_updated", &order)
		c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "order": order})
	}
}

type razorpayWebhookPayload struct {
	Event   string `json:"event"` // e.g. payment.captured, payment.failed
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// POST /payment/webhook (behind RazorpayWebhookAuth)
//
// Server-to-server confirmation path; authoritative when the client never
// returns from checkout.
func RazorpayWebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload razorpayWebhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse webhook payload"})
			return
		}

		var next models.PaymentStatus
		switch payload.Event {
		case "payment.captured":
			next = models.PaymentStatusPaid
		case "payment.failed":
			next = models.PaymentStatusFailed
		default:
			c.JSON(http.StatusOK, gin.H{"message": "event ignored"})
			return
		}

		razorpayOrderID := payload.Payload.Payment.Entity.OrderID
		if razorpayOrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing order reference"})
			return
		}

		var order models.Order
		err := cartControllers.RunSerialized(db, func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("razorpay_order_id = ?", razorpayOrderID).First(&order).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			if order.PaymentStatus != models.PaymentStatusPending {
				return nil // already settled, webhook retry
			}
			order.PaymentStatus = next
			return tx.Omit(clause.Associations).Save(&order).Error
		})
		if err != nil {
			respondOrderError(c, err)
			return
		}

		broadcastOrderEvent("order.payment_updated", &order)
		c.JSON(http.StatusOK, gin.H{"message": "webhook processed"})
	}
}
