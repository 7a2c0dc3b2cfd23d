package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/rajat290/obeyyo-api/controllers/admin"
	reviewControllers "github.com/rajat290/obeyyo-api/controllers/review"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, user, admin,
// order and payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public storefront routes (no middleware)
	r.GET("/banners", adminController.GetActiveBanners(db))
	r.GET("/products/:id/reviews", reviewControllers.GetProductReviews(db))

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)

	// Order routes
	SetupOrderRoutes(r, db)

	// Payment gateway routes
	SetupPaymentRoutes(r, db)
}
