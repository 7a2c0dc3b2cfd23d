package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/rajat290/obeyyo-api/controllers/order"
	"github.com/rajat290/obeyyo-api/middleware"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/payment")
	{
		// Webhook endpoint: middleware handles sandbox/prod signature verification
		payment.POST("/webhook",
			middleware.RazorpayWebhookAuth(),
			orderControllers.RazorpayWebhookHandler(db),
		)
	}
}
