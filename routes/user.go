package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/mstrendzz/ecommerce-api/controllers/cart"
	userControllers "github.com/mstrendzz/ecommerce-api/controllers/user"
	"github.com/mstrendzz/ecommerce-api/middleware"
)

// SetupUserRoutes registers account and cart endpoints under /api/users.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	users := r.Group("/api/users")
	{
		// Public account operations
		users.POST("/signup", userControllers.Signup(db, deps.Mailer))
		users.POST("/login", userControllers.Login(db))
		users.POST("/admin/create", userControllers.CreateAdmin(db))

		// JWT-protected
		protected := users.Group("")
		protected.Use(middleware.ValidateToken(db))
		{
			protected.GET("/cart", cartControllers.GetCart(db))
			protected.POST("/cart/add", cartControllers.AddToCart(db))
			protected.DELETE("/cart/remove/:userId/:productId", cartControllers.RemoveFromCart(db))
			protected.DELETE("/cart/:userId", cartControllers.ClearCart(db))

			protected.GET("/:userId", userControllers.GetUser(db))
			protected.PUT("/update/:userId", userControllers.UpdateProfile(db))
		}

		// Admin-only
		admin := users.Group("")
		admin.Use(middleware.ValidateToken(db), middleware.RequireAdmin)
		{
			admin.GET("", userControllers.GetAllUsers(db))
		}
	}
}
