package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/rajat290/obeyyo-api/controllers/order"
	"github.com/rajat290/obeyyo-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Checkout: snapshot the cart into a new order
		orders.POST("/", orderControllers.PlaceOrderHandler(db))

		// Fetch a single order by id or order_ref
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Fetch orders for a specific user
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))

		// Client-side payment confirmation (signed gateway callback)
		orders.POST("/:orderID/verify-payment", orderControllers.VerifyPaymentHandler(db))

		// User-initiated cancellation
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}
}
