package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartControllers "github.com/rajat290/obeyyo-api/controllers/cart"
	paymentControllers "github.com/rajat290/obeyyo-api/controllers/payment"
	"github.com/rajat290/obeyyo-api/coupons"
	"github.com/rajat290/obeyyo-api/models"
	"github.com/rajat290/obeyyo-api/pricing"
	"github.com/rajat290/obeyyo-api/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// generateOrderRef builds a unique human-pasteable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder atomically snapshots the cart into an order: stock is locked and
// decremented, the coupon is re-evaluated and its redemption counted, totals
// are computed, and the cart is cleared. Any failure rolls the whole thing back.
func PlaceOrder(db *gorm.DB, userID string, req *validation.OrderCreateRequest) (*models.Order, error) {
	var order *models.Order

	err := cartControllers.RunSerialized(db, func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrEmptyCart
			}
			return err
		}
		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.CartID).Order("added_at").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return models.ErrEmptyCart
		}

		// the address references must exist and belong to the buyer
		if err := tx.First(&models.Address{}, "id = ? AND user_id = ?", req.ShippingAddressID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("shipping address %d: %w", req.ShippingAddressID, models.ErrNotFound)
			}
			return err
		}
		if req.BillingAddressID != nil {
			if err := tx.First(&models.Address{}, "id = ? AND user_id = ?", *req.BillingAddressID, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("billing address %d: %w", *req.BillingAddressID, models.ErrNotFound)
				}
				return err
			}
		}

		// reserve inventory under row locks
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return &models.OutOfStockError{ProductID: product.ID, Name: product.Name}
			}
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: product.Name,
				Image:       product.Image,
				Size:        item.Size,
				Color:       item.Color,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
			})
		}

		subtotal := pricing.Subtotal(items)
		discount := 0.0
		var coupon *models.Coupon

		if cart.CouponCode != "" {
			var cp models.Coupon
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("code = ?", cart.CouponCode).First(&cp).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &models.InvalidCouponError{Code: cart.CouponCode, Reason: "NOT_FOUND"}
				}
				return err
			}
			snap, err := cartControllers.BuildSnapshot(tx, items)
			if err != nil {
				return err
			}
			userCtx, err := cartControllers.LoadUserContext(tx, cp.ID, userID)
			if err != nil {
				return err
			}
			eval, err := coupons.Evaluate(&cp, snap, userCtx, time.Now())
			if err != nil {
				return err
			}
			if !eval.Applicable {
				return &models.InvalidCouponError{Code: cp.Code, Reason: eval.Reason}
			}
			discount = eval.DiscountAmount
			coupon = &cp
		}

		totals := pricing.Compute(subtotal, discount)

		order = &models.Order{
			OrderRef:          generateOrderRef(),
			UserID:            userID,
			Items:             orderItems,
			ShippingAddressID: req.ShippingAddressID,
			BillingAddressID:  req.BillingAddressID,
			Subtotal:          totals.Subtotal,
			Discount:          totals.Discount,
			ShippingCost:      totals.Shipping,
			Tax:               totals.Tax,
			TotalAmount:       totals.Total,
			Status:            models.OrderStatusPending,
			PaymentStatus:     models.PaymentStatusPending,
			PaymentMethod:     models.PaymentMethod(req.PaymentMethod),
			Notes:             req.Notes,
			CreatedAt:         time.Now(),
		}
		if coupon != nil {
			code := coupon.Code
			order.CouponCode = &code
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// count the redemption only now that the order exists
		if coupon != nil {
			if err := tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID).
				Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
			redemption := models.CouponRedemption{
				CouponID:   coupon.ID,
				UserID:     userID,
				OrderID:    order.ID,
				RedeemedAt: time.Now(),
			}
			if err := tx.Create(&redemption).Error; err != nil {
				return err
			}
		}

		// clear the cart; the order is the source of truth from here on
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		cart.CouponCode = ""
		cart.Subtotal, cart.Discount, cart.Shipping, cart.Tax, cart.Total = 0, 0, 0, 0, 0
		return tx.Omit(clause.Associations).Save(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req validation.OrderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if fieldErrs := validation.ValidateOrderCreate(&req); len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"code":   models.ErrCodeValidationFailed,
				"fields": fieldErrs,
			})
			return
		}

		order, err := PlaceOrder(db, userID, &req)
		if err != nil {
			respondOrderError(c, err)
			return
		}

		// payment intent for gateway-paid orders happens after the commit; the
		// order already exists and the call can be retried if it fails
		if order.PaymentMethod == models.PaymentMethodRazorpay {
			razorpayOrderID, err := paymentControllers.CreateRazorpayOrder(order.OrderRef, order.TotalAmount, "INR")
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "order": order})
				return
			}
			order.RazorpayOrderID = razorpayOrderID
			if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("razorpay_order_id", razorpayOrderID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store payment reference"})
				return
			}
		}

		broadcastOrderEvent("order.created", order)
		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
	}
}

// GET /orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? OR order_ref = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found", "code": models.ErrCodeNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func respondOrderError(c *gin.Context, err error) {
	var (
		ice *models.InvalidCouponError
		ite *models.InvalidTransitionError
		ose *models.OutOfStockError
	)
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": models.ErrCodeNotFound})
	case errors.Is(err, models.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": models.ErrCodeConcurrencyConflict})
	case errors.As(err, &ice):
		c.JSON(http.StatusBadRequest, gin.H{"error": ice.Error(), "code": models.ErrCodeInvalidCoupon, "reason": ice.Reason})
	case errors.As(err, &ite):
		c.JSON(http.StatusConflict, gin.H{"error": ite.Error(), "code": models.ErrCodeInvalidTransition})
	case errors.As(err, &ose):
		c.JSON(http.StatusConflict, gin.H{"error": ose.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
