package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajat290/obeyyo-api/models"
	"github.com/rajat290/obeyyo-api/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateItemInput struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

func userIDFrom(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userIDVal.(string), true
}

// lockCart fetches (or creates) the user's cart row under FOR UPDATE so that
// rapid successive mutations serialize instead of losing updates. The insert
// uses ON CONFLICT DO NOTHING: when two first-time mutations race, the loser
// must not abort the transaction with a duplicate-key error, it just locks the
// winner's row on the re-select.
func lockCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&models.Cart{UserID: userID}).Error; err != nil {
			return nil, err
		}
		cart = models.Cart{}
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartResponse(cart *models.Cart, couponInvalidated bool) gin.H {
	return gin.H{
		"cart":               cart,
		"coupon_invalidated": couponInvalidated,
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}

		var cart models.Cart
		err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// first authenticated visit: an empty cart
			cart = models.Cart{UserID: userID}
			if err := db.Create(&cart).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(&cart, false))
	}
}

// POST /user/cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var (
			cart        *models.Cart
			invalidated bool
		)
		err := RunSerialized(db, func(tx *gorm.DB) error {
			var err error
			cart, err = lockCart(tx, userID)
			if err != nil {
				return err
			}

			var product models.Product
			if err := tx.First(&product, "id = ? AND is_active = ?", input.ProductID, true).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}

			var item models.CartItem
			err = tx.Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
				cart.CartID, input.ProductID, input.Size, input.Color).First(&item).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				item = models.CartItem{
					CartID:    cart.CartID,
					ProductID: product.ID,
					Size:      input.Size,
					Color:     input.Color,
					UnitPrice: product.Price, // price snapshot at add time
					Quantity:  pricing.ClampQuantity(0, input.Quantity),
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				item.Quantity = pricing.ClampQuantity(item.Quantity, input.Quantity)
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}

			invalidated, err = RecomputeCart(tx, cart)
			return err
		})
		if err != nil {
			respondCartError(c, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart, invalidated))
	}
}

// PUT /user/cart/items/:itemID
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}
		itemID := c.Param("itemID")

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var (
			cart        *models.Cart
			invalidated bool
		)
		err := RunSerialized(db, func(tx *gorm.DB) error {
			var err error
			cart, err = lockCart(tx, userID)
			if err != nil {
				return err
			}

			var item models.CartItem
			if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.CartID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}

			if *input.Quantity == 0 {
				// quantity 0 means remove
				if err := tx.Delete(&item).Error; err != nil {
					return err
				}
			} else {
				item.Quantity = pricing.ClampQuantity(0, *input.Quantity)
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			}

			invalidated, err = RecomputeCart(tx, cart)
			return err
		})
		if err != nil {
			respondCartError(c, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart, invalidated))
	}
}

// DELETE /user/cart/items/:itemID
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}
		itemID := c.Param("itemID")

		var (
			cart        *models.Cart
			invalidated bool
		)
		err := RunSerialized(db, func(tx *gorm.DB) error {
			var err error
			cart, err = lockCart(tx, userID)
			if err != nil {
				return err
			}

			result := tx.Where("id = ? AND cart_id = ?", itemID, cart.CartID).Delete(&models.CartItem{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return models.ErrNotFound
			}

			invalidated, err = RecomputeCart(tx, cart)
			return err
		})
		if err != nil {
			respondCartError(c, err)
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart, invalidated))
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
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
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
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

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(&cart, false))
	}
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": models.ErrCodeNotFound})
	case errors.Is(err, models.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": models.ErrCodeConcurrencyConflict})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
