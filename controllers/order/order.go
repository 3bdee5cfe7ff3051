package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mstrendzz/ecommerce-api/middleware"
	"github.com/mstrendzz/ecommerce-api/models"
	"github.com/mstrendzz/ecommerce-api/utils"
)

// -------- Request Structs --------

type OrderLineInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderLineInput `json:"items" binding:"required,min=1"`
	ShippingAddress string           `json:"shippingAddress" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

type VerifyOTPRequest struct {
	OTP   string `json:"otp" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// EnrichedOrderLine is the display-join view of an order line: title and
// image come from the live catalog, price stays the purchase-time snapshot.
type EnrichedOrderLine struct {
	ProductID uint    `json:"productId"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

type EnrichedOrder struct {
	ID          uint                `json:"id"`
	Date        time.Time           `json:"date"`
	TotalAmount float64             `json:"totalAmount"`
	Status      models.OrderStatus  `json:"status"`
	Items       []EnrichedOrderLine `json:"items"`
}

// bumpOrderRevision guards order writes the same way cart writes are
// guarded: the update lands only if the revision read is still current.
func bumpOrderRevision(tx *gorm.DB, orderID, revision uint, updates map[string]interface{}) error {
	updates["revision"] = revision + 1
	res := tx.Model(&models.Order{}).
		Where("id = ? AND revision = ?", orderID, revision).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order was modified concurrently", utils.ErrConflict)
	}
	return nil
}

// -------- Core Logic --------

// CreateOrder snapshots the given lines into a new Pending order. Prices and
// titles are re-derived from the catalog; the caller's figures are ignored.
func CreateOrder(db *gorm.DB, mailer utils.Mailer, userID uint, lines []OrderLineInput, shippingAddress string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: items array is missing or empty", utils.ErrValidation)
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping address is required", utils.ErrValidation)
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cannot create order for a non-existent user", utils.ErrValidation)
		}
		return nil, err
	}

	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		var product models.Product
		if err := db.First(&product, "id = ?", line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %d does not exist", utils.ErrValidation, line.ProductID)
			}
			return nil, err
		}
		total += product.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Image:     product.Image,
		})
	}

	order := models.Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		OrderDate:       time.Now(),
		ShippingAddress: shippingAddress,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}

	subject := "Order Confirmation from E-Commerce Platform"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour order has been successfully confirmed with the following order details:\n\n"+
			"Order ID: %d\nOrder Date: %s\nTotal Amount: $%.2f\nStatus: %s\nShipping Address: %s\n\n"+
			"Thank you for shopping with us!\n\nBest regards,\nE-Commerce Platform Team",
		user.Username, order.ID, order.OrderDate.Format(time.RFC3339),
		order.TotalAmount, order.Status, order.ShippingAddress)
	utils.SendAsync(mailer, user.Email, subject, body)

	broadcastOrderEvent("order_created", order)
	return &order, nil
}

// ListForOwner returns the caller's orders with lines display-joined against
// the current catalog. Lines whose product vanished are dropped from the view.
func ListForOwner(db *gorm.DB, userID uint) ([]EnrichedOrder, error) {
	var orders []models.Order
	if err := db.Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	enriched := make([]EnrichedOrder, 0, len(orders))
	for _, order := range orders {
		view := EnrichedOrder{
			ID:          order.ID,
			Date:        order.OrderDate,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			Items:       []EnrichedOrderLine{},
		}
		for _, item := range order.Items {
			var product models.Product
			if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // product removed from catalog, skip in the view
				}
				return nil, err
			}
			view.Items = append(view.Items, EnrichedOrderLine{
				ProductID: item.ProductID,
				Title:     product.Title,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Image:     product.Image,
			})
		}
		enriched = append(enriched, view)
	}
	return enriched, nil
}

// OrderListFilters is the composable admin filter set.
type OrderListFilters struct {
	Status      string
	ProductName string
	DateFrom    string // YYYY-MM-DD, inclusive from 00:00:00 UTC
	DateTo      string // YYYY-MM-DD, inclusive to 23:59:59 UTC
	SearchTerm  string
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

var orderSortFields = map[string]string{
	"orderDate":   "order_date",
	"totalAmount": "total_amount",
	"status":      "status",
	"id":          "id",
}

// ListAllOrders applies filters, counts the full match set, then pages.
func ListAllOrders(db *gorm.DB, f OrderListFilters) ([]models.Order, int64, error) {
	query := db.Model(&models.Order{})

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	if f.DateFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", f.DateFrom, time.UTC)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid dateFrom", utils.ErrValidation)
		}
		query = query.Where("order_date >= ?", from)
	}
	if f.DateTo != "" {
		to, err := time.ParseInLocation("2006-01-02", f.DateTo, time.UTC)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid dateTo", utils.ErrValidation)
		}
		query = query.Where("order_date <= ?", to.Add(24*time.Hour-time.Second))
	}

	if f.ProductName != "" {
		var productIDs []uint
		pattern := "%" + strings.ToLower(f.ProductName) + "%"
		if err := db.Model(&models.Product{}).
			Where("LOWER(title) LIKE ?", pattern).
			Pluck("id", &productIDs).Error; err != nil {
			return nil, 0, err
		}
		// No catalog product matches: no order can match either, so the
		// main query is never touched.
		if len(productIDs) == 0 {
			return []models.Order{}, 0, nil
		}
		query = query.Where("id IN (?)",
			db.Model(&models.OrderItem{}).Select("order_id").Where("product_id IN ?", productIDs))
	}

	if f.SearchTerm != "" {
		pattern := "%" + strings.ToLower(f.SearchTerm) + "%"
		conditions := db.Where("LOWER(shipping_address) LIKE ?", pattern).
			Or("id IN (?)", db.Model(&models.OrderItem{}).Select("order_id").Where("LOWER(title) LIKE ?", pattern)).
			Or("user_id IN (?)", db.Model(&models.User{}).Select("id").
				Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern))
		if id, err := strconv.ParseUint(f.SearchTerm, 10, 64); err == nil {
			conditions = conditions.Or("id = ?", uint(id))
		}
		query = query.Where(conditions)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortColumn, ok := orderSortFields[f.SortBy]
	sortOrder := strings.ToLower(f.SortOrder)
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	if !ok {
		sortColumn, sortOrder = "order_date", "desc"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}

	var orders []models.Order
	if err := query.
		Preload("Items").
		Preload("User").
		Order(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus moves an order along a legal edge. The Shipped -> Delivered
// edge is not applied here: it returns a delivery OTP token instead, and the
// transition completes through VerifyDeliveryOTP.
func UpdateStatus(db *gorm.DB, mailer utils.Mailer, orderID uint, newStatus models.OrderStatus) (*models.Order, string, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, "", fmt.Errorf("%w: invalid status provided", utils.ErrValidation)
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: order not found", utils.ErrNotFound)
		}
		return nil, "", err
	}

	if !models.CanTransition(order.Status, newStatus) {
		return nil, "", fmt.Errorf("%w: cannot move order from %q to %q", utils.ErrValidation, order.Status, newStatus)
	}

	if order.Status == models.OrderStatusShipped && newStatus == models.OrderStatusDelivered {
		code, err := GenerateOTP()
		if err != nil {
			return nil, "", err
		}
		token, err := NewDeliveryToken(order.ID, code)
		if err != nil {
			return nil, "", err
		}

		var owner models.User
		if err := db.First(&owner, "id = ?", order.UserID).Error; err == nil {
			utils.SendAsync(mailer, owner.Email, "Delivery Confirmation Code",
				fmt.Sprintf("Dear %s,\n\nYour delivery confirmation code for order %d is: %s\n"+
					"Share it with the delivery agent to confirm you received your package.\n\n"+
					"The code expires in %d minutes.", owner.Username, order.ID, code, int(deliveryTokenTTL.Minutes())))
		}
		return &order, token, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return bumpOrderRevision(tx, order.ID, order.Revision, map[string]interface{}{"status": newStatus})
	})
	if err != nil {
		return nil, "", err
	}

	order.Status = newStatus
	broadcastOrderEvent("status_updated", order)
	return &order, "", nil
}

// CancelLine removes one line from an order, decrements the stored total by
// exactly price x quantity, and forces Cancelled once no lines remain.
func CancelLine(db *gorm.DB, orderID, productID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", utils.ErrNotFound)
		}
		return nil, err
	}

	itemIndex := -1
	for i, item := range order.Items {
		if item.ProductID == productID {
			itemIndex = i
			break
		}
	}
	if itemIndex == -1 {
		return nil, fmt.Errorf("%w: product not found in the order", utils.ErrNotFound)
	}

	cancelled := order.Items[itemIndex]
	newTotal := order.TotalAmount - cancelled.Price*float64(cancelled.Quantity)
	newStatus := order.Status
	if len(order.Items) == 1 {
		newStatus = models.OrderStatusCancelled
		newTotal = 0
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := bumpOrderRevision(tx, order.ID, order.Revision, map[string]interface{}{
			"total_amount": newTotal,
			"status":       newStatus,
		}); err != nil {
			return err
		}
		return tx.Delete(&models.OrderItem{}, "id = ?", cancelled.ID).Error
	})
	if err != nil {
		return nil, err
	}

	var updated models.Order
	if err := db.Preload("Items").First(&updated, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	if updated.Status != order.Status {
		broadcastOrderEvent("status_updated", updated)
	}
	return &updated, nil
}

// VerifyDeliveryOTP completes the Shipped -> Delivered handshake. Any
// mismatch fails without touching the order.
func VerifyDeliveryOTP(db *gorm.DB, orderID uint, code, token string) (*models.Order, error) {
	if err := CheckDeliveryToken(token, orderID, code); err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", utils.ErrNotFound)
		}
		return nil, err
	}
	if order.Status != models.OrderStatusShipped {
		return nil, fmt.Errorf("%w: order is not awaiting delivery confirmation", utils.ErrValidation)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return bumpOrderRevision(tx, order.ID, order.Revision,
			map[string]interface{}{"status": models.OrderStatusDelivered})
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusDelivered
	broadcastOrderEvent("status_updated", order)
	return &order, nil
}

// RequestReturn moves an order into Return Requested. Only Shipped and
// Delivered orders have that edge; anything else is rejected.
func RequestReturn(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", utils.ErrNotFound)
		}
		return nil, err
	}

	if !models.CanTransition(order.Status, models.OrderStatusReturnRequested) {
		return nil, fmt.Errorf("%w: cannot request a return for an order in %q", utils.ErrValidation, order.Status)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return bumpOrderRevision(tx, order.ID, order.Revision,
			map[string]interface{}{"status": models.OrderStatusReturnRequested})
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusReturnRequested
	broadcastOrderEvent("status_updated", order)
	return &order, nil
}

// MarkPaid records a verified gateway payment and moves the order into
// processing through the lifecycle engine.
func MarkPaid(db *gorm.DB, orderID uint, paymentID string) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", utils.ErrNotFound)
		}
		return nil, err
	}
	if !models.CanTransition(order.Status, models.OrderStatusProcessing) {
		return nil, fmt.Errorf("%w: cannot move order from %q to %q",
			utils.ErrValidation, order.Status, models.OrderStatusProcessing)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return bumpOrderRevision(tx, order.ID, order.Revision, map[string]interface{}{
			"status":         models.OrderStatusProcessing,
			"payment_status": models.PaymentStatusPaid,
			"payment_ref":    paymentID,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusProcessing
	order.PaymentStatus = models.PaymentStatusPaid
	broadcastOrderEvent("status_updated", order)
	return &order, nil
}

// -------- Handlers --------

// POST /api/orders/add
func CreateOrderHandler(db *gorm.DB, mailer utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required order fields (items, shippingAddress) or invalid data format."})
			return
		}

		order, err := CreateOrder(db, mailer, user.ID, req.Items, req.ShippingAddress)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order created successfully", "order": order})
	}
}

// GET /api/orders/getOrders
func GetOrdersForUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orders, err := ListForOwner(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(orders) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "No orders found", "orders": []EnrichedOrder{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Orders fetched successfully", "orders": orders})
	}
}

// GET /api/orders/getAllOrders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		filters := OrderListFilters{
			Status:      c.Query("status"),
			ProductName: c.Query("productName"),
			DateFrom:    c.Query("dateFrom"),
			DateTo:      c.Query("dateTo"),
			SearchTerm:  c.Query("searchTerm"),
			SortBy:      c.DefaultQuery("sortBy", "orderDate"),
			SortOrder:   c.DefaultQuery("sortOrder", "desc"),
			Page:        page,
			Limit:       limit,
		}

		orders, total, err := ListAllOrders(db, filters)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		message := "Orders fetched successfully"
		if total == 0 && filters.ProductName != "" {
			message = "No orders found matching the product name."
		}
		c.JSON(http.StatusOK, gin.H{
			"message":     message,
			"orders":      orders,
			"totalOrders": total,
		})
	}
}

// PUT /api/orders/updateStatus/:orderId (admin)
func UpdateOrderStatusHandler(db *gorm.DB, mailer utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		order, otpToken, err := UpdateStatus(db, mailer, uint(orderID), models.OrderStatus(req.Status))
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		if otpToken != "" {
			c.JSON(http.StatusOK, gin.H{
				"message":  "Delivery confirmation code sent to the customer",
				"otpToken": otpToken,
				"order":    order,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully.", "order": order})
	}
}

// POST /api/orders/verify-otp/:orderId (admin)
func VerifyOTPHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "otp and token are required"})
			return
		}

		order, err := VerifyDeliveryOTP(db, uint(orderID), req.OTP, req.Token)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Delivery confirmed", "order": order})
	}
}

// POST /api/orders/cancel-item/:id
func CancelOrderItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID and Product ID are required"})
			return
		}

		var req CancelItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID and Product ID are required"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", uint(orderID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.UserID != user.ID && user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's order"})
			return
		}

		updated, err := CancelLine(db, uint(orderID), req.ProductID)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from order successfully", "order": updated})
	}
}

// GET /api/orders/request-return/:id
func RequestReturnHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", uint(orderID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.UserID != user.ID && user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot request a return for another user's order"})
			return
		}

		updated, err := RequestReturn(db, uint(orderID))
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Return requested successfully", "order": updated})
	}
}

// GET /api/orders/status/:id
func GetOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.Select("id", "status").First(&order, "id = ?", uint(orderID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderStatus": order.Status})
	}
}

// DELETE /api/orders/:orderId (admin, post-fulfillment cleanup)
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", uint(orderID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Order{}, "id = ?", order.ID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
