package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/rajat290/obeyyo-api/controllers/cart"
	productControllers "github.com/rajat290/obeyyo-api/controllers/product"
	reviewControllers "github.com/rajat290/obeyyo-api/controllers/review"
	userControllers "github.com/rajat290/obeyyo-api/controllers/user"
	"github.com/rajat290/obeyyo-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────── User Profile ────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))
		userGroup.POST("/addresses", userControllers.AddAddress(db))

		// ──────────── Shopping Cart ────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
			cartGroup.POST("/items", cartControllers.AddCartItem(db))
			cartGroup.PUT("/items/:itemID", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/items/:itemID", cartControllers.DeleteCartItem(db))
			cartGroup.POST("/coupon", cartControllers.ApplyCoupon(db))
			cartGroup.DELETE("/coupon", cartControllers.RemoveCoupon(db))
		}

		// ──────────── Browse Catalog ────────────
		userGroup.GET("/products", productControllers.GetProducts(db))
		userGroup.GET("/products/:id", productControllers.GetProductByID(db))
		userGroup.GET("/categories", productControllers.GetAllCategories(db))
		userGroup.GET("/brands", productControllers.GetAllBrands(db))

		// ──────────── Reviews ────────────
		userGroup.POST("/reviews", reviewControllers.CreateReview(db))
	}
}
