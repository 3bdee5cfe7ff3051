package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	chatControllers "github.com/mstrendzz/ecommerce-api/controllers/chat"
	paymentControllers "github.com/mstrendzz/ecommerce-api/controllers/payment"
	"github.com/mstrendzz/ecommerce-api/utils"
)

// Deps holds the external collaborators, constructed once in main and
// threaded into whichever handler needs them.
type Deps struct {
	Mailer            utils.Mailer
	Gateway           paymentControllers.Gateway
	RazorpayKeyID     string
	RazorpayKeySecret string
	Assistant         chatControllers.Completer
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	SetupUserRoutes(r, db, deps)
	SetupOrderRoutes(r, db, deps)
	SetupProductRoutes(r, db)
	SetupPaymentRoutes(r, db, deps)
	SetupChatRoutes(r, db, deps)
}
