package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	chatControllers "github.com/mstrendzz/ecommerce-api/controllers/chat"
)

// SetupChatRoutes registers the assistant endpoint.
func SetupChatRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	r.POST("/api/chat", chatControllers.ChatHandler(db, deps.Assistant))
}
