package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/rajat290/obeyyo-api/controllers/admin"
	cartControllers "github.com/rajat290/obeyyo-api/controllers/cart"
	couponControllers "github.com/rajat290/obeyyo-api/controllers/coupon"
	orderControllers "github.com/rajat290/obeyyo-api/controllers/order"
	productcontroller "github.com/rajat290/obeyyo-api/controllers/product"
	userControllers "github.com/rajat290/obeyyo-api/controllers/user"
	"github.com/rajat290/obeyyo-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}

		// ─────────── Category & Brand Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}
		brandAdmin := adminGroup.Group("/brands")
		{
			brandAdmin.POST("", productcontroller.CreateBrand(db))
			brandAdmin.GET("", productcontroller.GetAllBrands(db))
			brandAdmin.DELETE("/:id", productcontroller.DeleteBrand(db))
		}

		// ─────────── Coupon Management ───────────
		couponAdmin := adminGroup.Group("/coupons")
		{
			couponAdmin.POST("", couponControllers.CreateCoupon(db))
			couponAdmin.PUT("/:id", couponControllers.UpdateCoupon(db))
			couponAdmin.GET("", couponControllers.GetAllCoupons(db))
			couponAdmin.GET("/:id", couponControllers.GetCouponByID(db))
			couponAdmin.DELETE("/:id", couponControllers.DeleteCoupon(db))
		}

		// ─────────── Banner Management ───────────
		bannerAdmin := adminGroup.Group("/banners")
		{
			bannerAdmin.POST("", adminController.CreateBanner(db))
			bannerAdmin.PUT("/:id", adminController.UpdateBanner(db))
			bannerAdmin.GET("", adminController.GetBanners(db))
			bannerAdmin.DELETE("/:id", adminController.DeleteBanner(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))

			// live order feed for the admin dashboard
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}

		// ─────────── Cart Inspection ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
