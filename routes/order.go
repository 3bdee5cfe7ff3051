package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/mstrendzz/ecommerce-api/controllers/order"
	"github.com/mstrendzz/ecommerce-api/middleware"
)

// SetupOrderRoutes registers the order lifecycle endpoints under /api/orders.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken(db))
	{
		orders.POST("/add", orderControllers.CreateOrderHandler(db, deps.Mailer))
		orders.GET("/getOrders", orderControllers.GetOrdersForUserHandler(db))
		orders.POST("/cancel-item/:id", orderControllers.CancelOrderItemHandler(db))
		orders.GET("/request-return/:id", orderControllers.RequestReturnHandler(db))
		orders.GET("/status/:id", orderControllers.GetOrderStatusHandler(db))

		admin := orders.Group("")
		admin.Use(middleware.RequireAdmin)
		{
			admin.GET("/getAllOrders", orderControllers.GetAllOrdersHandler(db))
			admin.PUT("/updateStatus/:orderId", orderControllers.UpdateOrderStatusHandler(db, deps.Mailer))
			admin.POST("/verify-otp/:orderId", orderControllers.VerifyOTPHandler(db))
			admin.DELETE("/:orderId", orderControllers.DeleteOrderHandler(db))
			admin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			admin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}
	}
}
