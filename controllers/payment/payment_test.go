package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mstrendzz/ecommerce-api/models"
)

const testKeySecret = "test-key-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, total float64) models.Order {
	t.Helper()
	order := models.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: "12 Main St",
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

// fakeGateway records what it was asked to create.
type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	orderID      string
	err          error
}

func (g *fakeGateway) CreateGatewayOrder(amountPaise int64, currency, receipt string) (string, error) {
	g.lastAmount = amountPaise
	g.lastCurrency = currency
	if g.err != nil {
		return "", g.err
	}
	return g.orderID, nil
}

func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("user", user)
	}
}

func sign(gatewayOrderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(testKeySecret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	sig := sign("order_9", "pay_1")
	assert.True(t, VerifySignature("order_9", "pay_1", sig, testKeySecret))
	assert.False(t, VerifySignature("order_9", "pay_2", sig, testKeySecret))
	assert.False(t, VerifySignature("order_8", "pay_1", sig, testKeySecret))
	assert.False(t, VerifySignature("order_9", "pay_1", sig, "other-secret"))
	assert.False(t, VerifySignature("order_9", "pay_1", "", testKeySecret))
}

func TestCreatePaymentUsesStoredTotal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	order := seedOrder(t, db, user.ID, 210.55)

	gateway := &fakeGateway{orderID: "order_rzp_1"}
	r := gin.New()
	r.POST("/api/create-order", asUser(user), CreatePaymentHandler(db, gateway, "key_test"))

	body, _ := json.Marshal(gin.H{"orderId": order.ID, "amount": 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-order", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// The client-sent amount is ignored; paise come from the stored total.
	assert.EqualValues(t, 21055, gateway.lastAmount)
	assert.Equal(t, "INR", gateway.lastCurrency)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order_rzp_1", resp["razorpayId"])
	assert.Equal(t, "key_test", resp["key_id"])

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, "order_rzp_1", stored.PaymentRef)
}

func TestCreatePaymentForbidsForeignOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	alice := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	bob := models.User{Username: "bob", Email: "bob@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)
	order := seedOrder(t, db, alice.ID, 100)

	r := gin.New()
	r.POST("/api/create-order", asUser(bob), CreatePaymentHandler(db, &fakeGateway{orderID: "x"}, "key_test"))

	body, _ := json.Marshal(gin.H{"orderId": order.ID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/create-order", bytes.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyPaymentMarksOrderPaid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	order := seedOrder(t, db, user.ID, 100)
	require.NoError(t, db.Model(&order).Update("payment_ref", "order_rzp_1").Error)

	r := gin.New()
	r.POST("/api/verify-payment", asUser(user), VerifyPaymentHandler(db, testKeySecret))

	body, _ := json.Marshal(gin.H{
		"orderId":    order.ID,
		"paymentId":  "pay_1",
		"razorpayId": "order_rzp_1",
		"signature":  sign("order_rzp_1", "pay_1"),
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/verify-payment", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusProcessing, stored.Status)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, "pay_1", stored.PaymentRef)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	order := seedOrder(t, db, user.ID, 100)
	require.NoError(t, db.Model(&order).Update("payment_ref", "order_rzp_1").Error)

	r := gin.New()
	r.POST("/api/verify-payment", asUser(user), VerifyPaymentHandler(db, testKeySecret))

	body, _ := json.Marshal(gin.H{
		"orderId":    order.ID,
		"paymentId":  "pay_1",
		"razorpayId": "order_rzp_1",
		"signature":  "deadbeef",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/verify-payment", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestVerifyPaymentRejectsMismatchedReference(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	user := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	order := seedOrder(t, db, user.ID, 100)
	require.NoError(t, db.Model(&order).Update("payment_ref", "order_rzp_1").Error)

	r := gin.New()
	r.POST("/api/verify-payment", asUser(user), VerifyPaymentHandler(db, testKeySecret))

	// Signature is valid but for a gateway order that is not this order's.
	body, _ := json.Marshal(gin.H{
		"orderId":    order.ID,
		"paymentId":  "pay_1",
		"razorpayId": "order_rzp_other",
		"signature":  sign("order_rzp_other", "pay_1"),
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/verify-payment", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
