package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/mstrendzz/ecommerce-api/controllers/payment"
	"github.com/mstrendzz/ecommerce-api/middleware"
)

// SetupPaymentRoutes registers the payment bridge endpoints.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	r.GET("/api/payment", func(c *gin.Context) {
		c.String(http.StatusOK, "Payment backend OK")
	})

	payment := r.Group("/api")
	payment.Use(middleware.ValidateToken(db))
	{
		payment.POST("/create-order", paymentControllers.CreatePaymentHandler(db, deps.Gateway, deps.RazorpayKeyID))
		payment.POST("/verify-payment", paymentControllers.VerifyPaymentHandler(db, deps.RazorpayKeySecret))
	}
}
