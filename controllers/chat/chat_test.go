package chatControllers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mstrendzz/ecommerce-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

// stubCompleter records whether the fallthrough was reached.
type stubCompleter struct {
	called     bool
	lastPrompt string
	reply      string
}

func (s *stubCompleter) GenerateResponse(_ context.Context, _, userPrompt string) (string, error) {
	s.called = true
	s.lastPrompt = userPrompt
	return s.reply, nil
}

func seedUserWithOrder(t *testing.T, db *gorm.DB) (models.User, models.Order) {
	t.Helper()
	user := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	order := models.Order{
		UserID: user.ID,
		Items: []models.OrderItem{{
			ProductID: 1, Title: "Denim Jacket", Quantity: 1, Price: 60,
		}},
		TotalAmount:     60,
		Status:          models.OrderStatusShipped,
		PaymentStatus:   models.PaymentStatusPaid,
		OrderDate:       time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		ShippingAddress: "12 Main St",
	}
	require.NoError(t, db.Create(&order).Error)
	return user, order
}

func TestReplyFAQsNeverReachCompleter(t *testing.T) {
	db := newTestDB(t)
	stub := &stubCompleter{reply: "llm"}

	cases := map[string]string{
		"what is your return policy?":   "30 days",
		"how much is the shipping cost": "free on orders over $50",
		"which payment methods work":    "PayPal",
		"hello":                         "How can I help you",
	}
	for input, want := range cases {
		reply, err := Reply(context.Background(), db, stub, input, 0)
		require.NoError(t, err, input)
		assert.Contains(t, reply, want, input)
	}
	assert.False(t, stub.called)
}

func TestReplyTracksOrderByID(t *testing.T) {
	db := newTestDB(t)
	_, order := seedUserWithOrder(t, db)
	stub := &stubCompleter{reply: "Your order is on the way."}

	reply, err := Reply(context.Background(), db, stub, "track order #1", 0)
	require.NoError(t, err)
	assert.Equal(t, "Your order is on the way.", reply)

	// The order details ride along in the prompt as context.
	require.True(t, stub.called)
	assert.Contains(t, stub.lastPrompt, "Denim Jacket")
	assert.Contains(t, stub.lastPrompt, string(order.Status))
}

func TestReplyTrackUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	stub := &stubCompleter{}

	reply, err := Reply(context.Background(), db, stub, "track order #4242", 0)
	require.NoError(t, err)
	assert.Contains(t, reply, "couldn't find an order")
	assert.False(t, stub.called)
}

func TestReplyTrackWithoutIDAsksForIt(t *testing.T) {
	db := newTestDB(t)
	stub := &stubCompleter{}

	reply, err := Reply(context.Background(), db, stub, "please track order", 0)
	require.NoError(t, err)
	assert.Contains(t, reply, "provide your order ID")
	assert.False(t, stub.called)
}

func TestReplyMyOrdersRequiresLogin(t *testing.T) {
	db := newTestDB(t)
	stub := &stubCompleter{}

	reply, err := Reply(context.Background(), db, stub, "show me my orders", 0)
	require.NoError(t, err)
	assert.Contains(t, reply, "log in")
	assert.False(t, stub.called)
}

func TestReplyMyOrdersBuildsHistoryContext(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithOrder(t, db)
	stub := &stubCompleter{reply: "Here is your history."}

	_, err := Reply(context.Background(), db, stub, "what are my orders?", user.ID)
	require.NoError(t, err)
	require.True(t, stub.called)
	assert.Contains(t, stub.lastPrompt, "recent orders")
	assert.Contains(t, stub.lastPrompt, "Denim Jacket")
}

func TestReplyEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithOrder(t, db)
	stub := &stubCompleter{}

	reply, err := Reply(context.Background(), db, stub, "what's in my cart?", user.ID)
	require.NoError(t, err)
	assert.Contains(t, reply, "cart is currently empty")
	assert.False(t, stub.called)
}

func TestReplyCartSummaryContext(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithOrder(t, db)
	cart := models.Cart{
		UserID: user.ID,
		Items: []models.CartItem{{
			ProductID: 1, Title: "Running Shoes", Price: 89.5, Quantity: 2, AddedAt: time.Now(),
		}},
	}
	require.NoError(t, db.Create(&cart).Error)
	stub := &stubCompleter{reply: "You left something behind!"}

	_, err := Reply(context.Background(), db, stub, "did I leave an abandoned cart?", user.ID)
	require.NoError(t, err)
	require.True(t, stub.called)
	assert.Contains(t, stub.lastPrompt, "Running Shoes x2")
}

func TestReplyFallsThroughToCompleter(t *testing.T) {
	db := newTestDB(t)
	stub := &stubCompleter{reply: "We stock summer dresses in all sizes."}

	reply, err := Reply(context.Background(), db, stub, "do you sell summer dresses?", 0)
	require.NoError(t, err)
	assert.Equal(t, "We stock summer dresses in all sizes.", reply)
	require.True(t, stub.called)
	// No matcher fired, so the raw message is the whole prompt.
	assert.False(t, strings.Contains(stub.lastPrompt, "Relevant system data"))
}
