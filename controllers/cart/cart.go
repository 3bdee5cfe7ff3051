package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mstrendzz/ecommerce-api/middleware"
	"github.com/mstrendzz/ecommerce-api/models"
	"github.com/mstrendzz/ecommerce-api/utils"
)

type CartDeltaInput struct {
	ProductID     uint `json:"productId" binding:"required"`
	QuantityDelta int  `json:"quantityDelta" binding:"required"`
}

type AddToCartRequest struct {
	Items []CartDeltaInput `json:"items" binding:"required,min=1"`
}

// createCart inserts the first cart for a user. Two concurrent first-adds
// race on the user_id unique index; the loser gets Conflict, not a raw
// driver error.
func createCart(db *gorm.DB, cart *models.Cart) error {
	if err := db.Create(cart).Error; err != nil {
		var count int64
		db.Model(&models.Cart{}).Where("user_id = ?", cart.UserID).Count(&count)
		if count > 0 {
			return fmt.Errorf("%w: cart was created concurrently", utils.ErrConflict)
		}
		return err
	}
	return nil
}

// bumpRevision is the optimistic write guard: the caller supplies the
// revision it read, and the update only lands if no one else wrote since.
func bumpRevision(tx *gorm.DB, cartID, revision uint) error {
	res := tx.Model(&models.Cart{}).
		Where("cart_id = ? AND revision = ?", cartID, revision).
		Updates(map[string]interface{}{"revision": revision + 1, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: cart was modified concurrently", utils.ErrConflict)
	}
	return nil
}

// ApplyDelta upserts a cart line by a signed quantity change. Price, title
// and image always come from the catalog row, never from the caller.
func ApplyDelta(db *gorm.DB, userID, productID uint, delta int) (*models.Cart, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist", utils.ErrValidation)
		}
		return nil, err
	}

	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A negative or zero delta cannot create a cart.
		if delta <= 0 {
			return nil, fmt.Errorf("%w: cart not found for user, cannot decrease quantity", utils.ErrNotFound)
		}
		cart = models.Cart{
			UserID: userID,
			Items: []models.CartItem{{
				ProductID: product.ID,
				Title:     product.Title,
				Price:     product.Price,
				Image:     product.Image,
				Quantity:  delta,
				AddedAt:   time.Now(),
			}},
		}
		if err := createCart(db, &cart); err != nil {
			return nil, err
		}
		return &cart, nil
	} else if err != nil {
		return nil, err
	}

	itemIndex := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			itemIndex = i
			break
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, cart.CartID, cart.Revision); err != nil {
			return err
		}

		switch {
		case itemIndex >= 0:
			item := cart.Items[itemIndex]
			newQty := item.Quantity + delta
			if newQty <= 0 {
				// Lines are removed, never kept at quantity zero.
				return tx.Delete(&models.CartItem{}, "id = ?", item.ID).Error
			}
			return tx.Model(&models.CartItem{}).Where("id = ?", item.ID).
				Updates(map[string]interface{}{
					"quantity": newQty,
					"title":    product.Title,
					"price":    product.Price,
					"image":    product.Image,
					"added_at": time.Now(),
				}).Error
		case delta > 0:
			return tx.Create(&models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Title:     product.Title,
				Price:     product.Price,
				Image:     product.Image,
				Quantity:  delta,
				AddedAt:   time.Now(),
			}).Error
		default:
			// Decrement against a line that is not in the cart: silent no-op.
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	var updated models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveLine filters a product out of the cart. A missing line is not an
// error; a missing cart is.
func RemoveLine(db *gorm.DB, userID, productID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart not found", utils.ErrNotFound)
		}
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, cart.CartID, cart.Revision); err != nil {
			return err
		}
		return tx.Delete(&models.CartItem{}, "cart_id = ? AND product_id = ?", cart.CartID, productID).Error
	})
	if err != nil {
		return nil, err
	}

	var updated models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Clear deletes the cart document entirely (post-checkout). No-op if absent.
func Clear(db *gorm.DB, userID uint) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CartItem{}, "cart_id = ?", cart.CartID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, "cart_id = ?", cart.CartID).Error
	})
}

// -------- Handlers --------

// POST /api/users/cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Items array is missing or empty."})
			return
		}

		item := req.Items[0]
		cart, err := ApplyDelta(db, user.ID, item.ProductID, item.QuantityDelta)
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully", "cart": cart})
	}
}

// GET /api/users/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// An empty cart is a valid state, not a 404.
				c.JSON(http.StatusOK, gin.H{
					"message": "Cart is empty",
					"cart":    gin.H{"userId": user.ID, "items": []models.CartItem{}},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting cart items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// DELETE /api/users/cart/remove/:userId/:productId
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		if user.ID != uint(userID) && user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's cart"})
			return
		}

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		cart, err := RemoveLine(db, uint(userID), uint(productID))
		if err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "cart": cart})
	}
}

// DELETE /api/users/cart/:userId (post-checkout cleanup)
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		if user.ID != uint(userID) && user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another user's cart"})
			return
		}

		if err := Clear(db, uint(userID)); err != nil {
			c.JSON(utils.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart deleted after ordering"})
	}
}
