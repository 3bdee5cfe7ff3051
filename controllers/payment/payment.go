package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	orderControllers "github.com/mstrendzz/ecommerce-api/controllers/order"
	"github.com/mstrendzz/ecommerce-api/middleware"
	"github.com/mstrendzz/ecommerce-api/models"
	"github.com/mstrendzz/ecommerce-api/utils"
)

// Gateway creates orders on the remote payment provider. It is constructed
// once at process start and injected into the handlers.
type Gateway interface {
	CreateGatewayOrder(amountPaise int64, currency, receipt string) (string, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateGatewayOrder(amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	gatewayOrder, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}
	id, ok := gatewayOrder["id"].(string)
	if !ok || id == "" {
		return "", errors.New("gateway returned no order id")
	}
	return id, nil
}

// VerifySignature checks the callback signature: HMAC-SHA256 of
// "<gatewayOrderID>|<paymentID>" under the shared key secret.
func VerifySignature(gatewayOrderID, paymentID, signature, keySecret string) bool {
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type CreatePaymentRequest struct {
	OrderID  uint   `json:"orderId" binding:"required"`
	Currency string `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID    uint   `json:"orderId" binding:"required"`
	PaymentID  string `json:"paymentId" binding:"required"`
	Signature  string `json:"signature" binding:"required"`
	RazorpayID string `json:"razorpayId" binding:"required"`
}

// POST /api/create-order
// Amount comes from the stored order total, never from the client.
func CreatePaymentHandler(db *gorm.DB, gateway Gateway, keyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot pay for another user's order"})
			return
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already paid"})
			return
		}

		currency := req.Currency
		if currency == "" {
			currency = "INR"
		}
		amountPaise := int64(math.Round(order.TotalAmount * 100))
		receipt := "rcpt_" + uuid.NewString()

		gatewayOrderID, err := gateway.CreateGatewayOrder(amountPaise, currency, receipt)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment order: " + err.Error()})
			return
		}

		if err := db.Model(&order).Update("payment_ref", gatewayOrderID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment reference"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId":    order.ID,
			"razorpayId": gatewayOrderID,
			"amount":     amountPaise,
			"currency":   currency,
			"key_id":     keyID,
		})
	}
}

// POST /api/verify-payment
func VerifyPaymentHandler(db *gorm.DB, keySecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.UserID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot verify another user's payment"})
			return
		}
		if order.PaymentRef == "" || order.PaymentRef != req.RazorpayID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment does not belong to this order"})
			return
		}

		if !VerifySignature(req.RazorpayID, req.PaymentID, req.Signature, keySecret) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}

		updated, err := orderControllers.MarkPaid(db, order.ID, req.PaymentID)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "order": updated})
	}
}
