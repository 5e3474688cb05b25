package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/cache"
	medicineControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/medicine"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/flash"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/middleware"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

// CartLine joins a cart item to its live medicine for display and totals.
type CartLine struct {
	Medicine models.Medicine `json:"medicine"`
	Quantity int             `json:"quantity"`
}

func (l CartLine) Subtotal() float64 {
	return l.Medicine.Price * float64(l.Quantity)
}

type AddItemInput struct {
	MedicineID uint `json:"medicine_id" binding:"required"`
}

type CheckoutItem struct {
	ID  uint `json:"id" binding:"required"`
	Qty int  `json:"qty" binding:"required,min=1"`
}

type CheckoutInput struct {
	Items []CheckoutItem `json:"items" binding:"required"`
}

// -------- Core Logic --------

// AddItem puts one unit of a medicine into the user's cart. A repeat add
// bumps the existing line's quantity by one; the bump is a single UPDATE so
// two adds never race into separate rows.
func AddItem(db *gorm.DB, userID, medicineID uint) error {
	var exists int64
	if err := db.Model(&models.Medicine{}).Where("id = ?", medicineID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return models.ErrNotFound
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND medicine_id = ?", userID, medicineID).
			UpdateColumn("quantity", gorm.Expr("quantity + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			UserID:     userID,
			MedicineID: medicineID,
			Quantity:   1,
			AddedAt:    time.Now(),
		}
		return tx.Create(&item).Error
	})
}

// ListCart returns the user's cart lines with their medicines attached.
func ListCart(db *gorm.DB, userID uint) ([]CartLine, error) {
	var items []models.CartItem
	if err := db.Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		var medicine models.Medicine
		if err := db.First(&medicine, item.MedicineID).Error; err != nil {
			return nil, err
		}
		lines = append(lines, CartLine{Medicine: medicine, Quantity: item.Quantity})
	}
	return lines, nil
}

// CartTotal sums price×quantity over the lines. Zero for an empty cart.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// ClearCart removes every line the user has.
func ClearCart(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// Checkout validates and applies stock decrements for an explicit item list,
// all inside one transaction. Phase one checks every line and fails the whole
// request naming the first medicine that cannot be served; phase two applies
// the decrements. This endpoint adjusts stock only; it records no order.
func Checkout(db *gorm.DB, items []CheckoutItem) error {
	if len(items) == 0 {
		return models.ErrEmptyCart
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var medicine models.Medicine
			if err := tx.First(&medicine, item.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("unknown medicine %d: %w", item.ID, models.ErrNotFound)
				}
				return err
			}
			if item.Qty <= 0 || medicine.Stock < item.Qty {
				return fmt.Errorf("%s out of stock: %w", medicine.Name, models.ErrInsufficientStock)
			}
		}

		for _, item := range items {
			if err := medicineControllers.DecrementStock(tx, item.ID, item.Qty); err != nil {
				return err
			}
		}
		return nil
	})
}

// -------- Handlers --------

// GET /add_to_cart/:id
func AddToCartPage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			flash.Set(c, "danger", "Invalid medicine.")
			c.Redirect(http.StatusFound, "/")
			return
		}

		if err := AddItem(db, userID, uint(id)); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				flash.Set(c, "danger", "Medicine not found.")
			} else {
				flash.Set(c, "danger", "Could not add item to cart.")
			}
			c.Redirect(http.StatusFound, "/")
			return
		}

		flash.Set(c, "success", "Item added to cart!")
		c.Redirect(http.StatusFound, "/")
	}
}

// GET /cart
func ViewCartPage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		lines, err := ListCart(db, userID)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "cart.html", gin.H{"Error": "Failed to load cart"})
			return
		}

		username, _ := c.Get("username")
		c.HTML(http.StatusOK, "cart.html", gin.H{
			"Username": username,
			"Lines":    lines,
			"Total":    CartTotal(lines),
			"Flash":    flash.Pop(c),
		})
	}
}

// POST /api/cart
func AddToCartAPI(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := AddItem(db, userID, input.MedicineID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Medicine does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
	}
}

// GET /api/cart
func GetCartAPI(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		lines, err := ListCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": lines, "total": CartTotal(lines)})
	}
}

// POST /api/cart/checkout
func CheckoutHandler(db *gorm.DB, mc *cache.MedicineCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := Checkout(db, input.Items); err != nil {
			switch {
			case errors.Is(err, models.ErrInsufficientStock), errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			}
			return
		}

		mc.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Order placed"})
	}
}
