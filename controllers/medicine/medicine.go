package medicineControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/cache"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/flash"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

// defaultMedicines is the starter catalog inserted into an empty database.
var defaultMedicines = []models.Medicine{
	{Name: "Paracetamol", Brand: "Acme Pharma", Description: "Pain reliever and fever reducer", Price: 20, Stock: 100},
	{Name: "Amoxicillin", Brand: "BioMed", Description: "Antibiotic (prescription required)", Price: 45, Stock: 30},
	{Name: "Cough Syrup", Brand: "CureWell", Description: "Relief for dry and wet cough", Price: 60, Stock: 40},
	{Name: "Vitamin C", Brand: "AllergyCare", Description: "Daily immunity supplement", Price: 35, Stock: 50},
}

// -------- Core Logic --------

// SeedMedicines inserts the default catalog when the table is empty. Safe to
// run on every startup; a non-empty catalog is left untouched.
func SeedMedicines(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Medicine{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Insert a copy; gorm writes generated IDs back into the slice.
	medicines := make([]models.Medicine, len(defaultMedicines))
	copy(medicines, defaultMedicines)
	return db.Create(&medicines).Error
}

// ListMedicines returns the catalog in insertion order, optionally filtered
// by a case-insensitive substring match on name or brand.
func ListMedicines(db *gorm.DB, q string) ([]models.Medicine, error) {
	query := db.Model(&models.Medicine{}).Order("id")
	if q != "" {
		like := "%" + q + "%"
		// LOWER+LIKE instead of ILIKE so the same query runs on sqlite.
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)", like, like)
	}

	var medicines []models.Medicine
	if err := query.Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// ToggleLiked flips the liked flag and returns the updated medicine.
func ToggleLiked(db *gorm.DB, id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&medicine, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		medicine.Liked = !medicine.Liked
		return tx.Model(&medicine).Update("liked", medicine.Liked).Error
	})
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

// DecrementStock reduces a medicine's stock by qty inside the caller's
// transaction. The decrement is a single conditional update, so concurrent
// checkouts cannot drive stock negative.
func DecrementStock(tx *gorm.DB, id uint, qty int) error {
	if qty <= 0 {
		return models.ErrInvalidInput
	}

	result := tx.Model(&models.Medicine{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&models.Medicine{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.ErrNotFound
		}
		return models.ErrInsufficientStock
	}
	return nil
}

// -------- Handlers --------

// GET /
func Home(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		medicines, err := ListMedicines(db, "")
		if err != nil {
			c.HTML(http.StatusInternalServerError, "home.html", gin.H{"Error": "Failed to load catalog"})
			return
		}

		username, _ := c.Get("username")
		c.HTML(http.StatusOK, "home.html", gin.H{
			"Username":  username,
			"Medicines": medicines,
			"Flash":     flash.Pop(c),
		})
	}
}

// GET /api/medicines?q=
func ListMedicinesHandler(db *gorm.DB, mc *cache.MedicineCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")

		// Only the unfiltered listing is cached; filtered queries go to the DB.
		if q == "" {
			if medicines, ok := mc.GetList(c.Request.Context()); ok {
				c.JSON(http.StatusOK, medicines)
				return
			}
		}

		medicines, err := ListMedicines(db, q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}
		if q == "" {
			mc.SetList(c.Request.Context(), medicines)
		}

		c.JSON(http.StatusOK, medicines)
	}
}

// POST /api/medicines/:id/like
func ToggleLikedHandler(db *gorm.DB, mc *cache.MedicineCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine ID"})
			return
		}

		medicine, err := ToggleLiked(db, uint(id))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medicine"})
			}
			return
		}

		mc.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": medicine.ID, "liked": medicine.Liked})
	}
}
