package chatControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mstrendzz/ecommerce-api/models"
)

const systemInstruction = `You are ShopBot, a helpful and friendly e-commerce customer support assistant for "MS Trendzz".
Your primary goal is to assist users with:
1. Order Tracking
2. Displaying User's Orders
3. Abandoned Cart Recovery
4. Product Details & Reviews
5. General FAQs
6. Handover to Human Support

Rules:
- Stay on topic (orders, products, shop services).
- If outside scope, say: "I'm sorry, I can only assist with inquiries related to MS Trendzz's products, orders, and services. For other questions, please contact our human support team at support@mstrendzz.com."
- Keep responses concise & clear.`

// Completer is the LLM fallthrough. Matched intents never reach it.
type Completer interface {
	GenerateResponse(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	UserID  uint   `json:"userId"`
}

var orderIDPattern = regexp.MustCompile(`(?i)order\s+#?(\w+)`)

// Reply routes a free-text message: hand-rolled intent matchers first, LLM
// completion as the fallthrough. contextData gathered by a matcher rides
// along into the prompt when the matcher itself produced no direct reply.
func Reply(ctx context.Context, db *gorm.DB, completer Completer, message string, userID uint) (string, error) {
	input := strings.ToLower(message)
	var reply, contextData string

	switch {
	case strings.Contains(input, "track order") || orderIDPattern.MatchString(input):
		match := orderIDPattern.FindStringSubmatch(input)
		var orderID uint64
		var err error
		if match != nil {
			orderID, err = strconv.ParseUint(strings.TrimPrefix(match[1], "#"), 10, 64)
		}
		if match == nil || err != nil {
			reply = "Please provide your order ID so I can track it for you (e.g., 'Track order #12345')."
			break
		}
		var order models.Order
		if dbErr := db.Preload("Items").First(&order, "id = ?", uint(orderID)).Error; dbErr != nil {
			if errors.Is(dbErr, gorm.ErrRecordNotFound) {
				reply = fmt.Sprintf("I couldn't find an order with ID #%d. Please double-check the ID or contact support.", orderID)
				break
			}
			return "", dbErr
		}
		contextData = formatOrder(order)

	case strings.Contains(input, "my order") || strings.Contains(input, "purchase history") || strings.Contains(input, "ordered"):
		if userID == 0 {
			reply = "To view your orders, please log in to your account on our website."
			break
		}
		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("order_date desc").
			Limit(5).
			Find(&orders).Error; err != nil {
			return "", err
		}
		if len(orders) == 0 {
			reply = "You don't seem to have any recent orders."
			break
		}
		parts := make([]string, 0, len(orders))
		for _, order := range orders {
			parts = append(parts, formatOrder(order))
		}
		contextData = "Here are your recent orders:\n" + strings.Join(parts, "\n-----------------\n")

	case strings.Contains(input, "my cart") || strings.Contains(input, "abandoned cart"):
		if userID == 0 {
			reply = "To check your cart, please log in to your account."
			break
		}
		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reply = "Your cart is currently empty. Browse our catalog to find something you like!"
				break
			}
			return "", err
		}
		if len(cart.Items) == 0 {
			reply = "Your cart is currently empty. Browse our catalog to find something you like!"
			break
		}
		lines := make([]string, 0, len(cart.Items))
		for _, item := range cart.Items {
			lines = append(lines, fmt.Sprintf("- %s x%d ($%.2f each)", item.Title, item.Quantity, item.Price))
		}
		contextData = "Items waiting in the user's cart:\n" + strings.Join(lines, "\n")

	case strings.Contains(input, "return policy"):
		reply = "Our return policy allows returns within 30 days of purchase for a full refund."
	case strings.Contains(input, "shipping cost"):
		reply = "Standard shipping is free on orders over $50. Exact costs are shown at checkout."
	case strings.Contains(input, "payment methods"):
		reply = "We accept Visa, MasterCard, Amex, Discover, PayPal, and Google Pay."
	case strings.Contains(input, "hello") || input == "hi":
		reply = "Hello there! How can I help you today regarding MS Trendzz's products or your orders?"
	}

	if reply != "" {
		return reply, nil
	}

	prompt := message
	if contextData != "" {
		prompt = "Relevant system data: " + contextData + "\n\nUser's message: " + message
	}
	return completer.GenerateResponse(ctx, systemInstruction, prompt)
}

func formatOrder(order models.Order) string {
	titles := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		titles = append(titles, fmt.Sprintf("%s ($%.2f)", item.Title, item.Price))
	}
	return fmt.Sprintf("Order Details:\n- Items: %s\n- Status: %s\n- Total Amount: $%.2f\n- Ordered At: %s\n- Shipping Address: %s",
		strings.Join(titles, ", "), order.Status, order.TotalAmount,
		order.OrderDate.Format("2006-01-02"), order.ShippingAddress)
}

// POST /api/chat
func ChatHandler(db *gorm.DB, completer Completer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a message"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
		defer cancel()

		reply, err := Reply(ctx, db, completer, req.Message, req.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during chatbot response."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
