package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	cartControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/cart"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/flash"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/middleware"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

// generateOrderRef builds a human-opaque unique order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into an immutable order. The read of
// the cart, the order insert, and the cart clear share one transaction so a
// failure partway leaves both untouched.
func PlaceOrder(db *gorm.DB, userID uint) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		lines, err := cartControllers.ListCart(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return models.ErrEmptyCart
		}

		var total float64
		var orderItems []models.OrderItem
		for _, line := range lines {
			subtotal := line.Subtotal()
			total += subtotal
			orderItems = append(orderItems, models.OrderItem{
				MedicineName: line.Medicine.Name,
				Quantity:     line.Quantity,
				Price:        subtotal,
			})
		}

		order = models.Order{
			Ref:         generateOrderRef(),
			UserID:      userID,
			Items:       orderItems,
			TotalAmount: total,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// ListOrders returns the user's orders, items included, newest first.
func ListOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := db.
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// -------- Handlers --------

// GET /place_order
func PlaceOrderPage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		if _, err := PlaceOrder(db, userID); err != nil {
			if errors.Is(err, models.ErrEmptyCart) {
				flash.Set(c, "warning", "Your cart is empty!")
			} else {
				flash.Set(c, "danger", "Could not place your order.")
			}
			c.Redirect(http.StatusFound, "/cart")
			return
		}

		flash.Set(c, "success", "Order placed successfully!")
		c.Redirect(http.StatusFound, "/my_orders")
	}
}

// GET /my_orders
func MyOrdersPage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		orders, err := ListOrders(db, userID)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "orders.html", gin.H{"Error": "Failed to load orders"})
			return
		}

		username, _ := c.Get("username")
		c.HTML(http.StatusOK, "orders.html", gin.H{
			"Username": username,
			"Orders":   orders,
			"Flash":    flash.Pop(c),
		})
	}
}

// GET /api/orders
func ListOrdersAPI(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		orders, err := ListOrders(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
