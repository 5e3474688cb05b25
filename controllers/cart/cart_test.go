package cartControllers

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Medicine{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMedicine(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Medicine {
	t.Helper()
	med := models.Medicine{Name: name, Price: price, Stock: stock}
	if err := db.Create(&med).Error; err != nil {
		t.Fatalf("seed medicine %s: %v", name, err)
	}
	return med
}

func TestAddItemIncrementsQuantity(t *testing.T) {
	db := openTestDB(t)
	para := seedMedicine(t, db, "Paracetamol", 20, 100)
	amox := seedMedicine(t, db, "Amoxicillin", 45, 30)

	const userID = 1
	for i := 0; i < 3; i++ {
		if err := AddItem(db, userID, para.ID); err != nil {
			t.Fatalf("add paracetamol #%d: %v", i+1, err)
		}
	}
	if err := AddItem(db, userID, amox.ID); err != nil {
		t.Fatalf("add amoxicillin: %v", err)
	}

	lines, err := ListCart(db, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(lines))
	}
	if lines[0].Medicine.ID != para.ID || lines[0].Quantity != 3 {
		t.Fatalf("line 0 = (%d, qty %d), want (%d, qty 3)", lines[0].Medicine.ID, lines[0].Quantity, para.ID)
	}
	if lines[1].Medicine.ID != amox.ID || lines[1].Quantity != 1 {
		t.Fatalf("line 1 = (%d, qty %d), want (%d, qty 1)", lines[1].Medicine.ID, lines[1].Quantity, amox.ID)
	}

	// One row per (user, medicine) pair.
	var rows int64
	db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&rows)
	if rows != 2 {
		t.Fatalf("cart_items has %d rows, want 2", rows)
	}
}

func TestAddItemUnknownMedicine(t *testing.T) {
	db := openTestDB(t)

	if err := AddItem(db, 1, 999); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	db := openTestDB(t)
	para := seedMedicine(t, db, "Paracetamol", 20, 100)

	if err := AddItem(db, 1, para.ID); err != nil {
		t.Fatalf("add for user 1: %v", err)
	}

	lines, err := ListCart(db, 2)
	if err != nil {
		t.Fatalf("list for user 2: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("user 2 sees %d lines, want 0", len(lines))
	}
}

func TestCartTotalAndClear(t *testing.T) {
	db := openTestDB(t)
	para := seedMedicine(t, db, "Paracetamol", 20, 100)
	amox := seedMedicine(t, db, "Amoxicillin", 45, 30)

	const userID = 1
	if total := CartTotal(nil); total != 0 {
		t.Fatalf("empty cart total = %v, want 0", total)
	}

	AddItem(db, userID, para.ID)
	AddItem(db, userID, para.ID)
	AddItem(db, userID, amox.ID)

	lines, err := ListCart(db, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total := CartTotal(lines); total != 85 {
		t.Fatalf("total = %v, want 85", total)
	}

	if err := ClearCart(db, userID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, _ = ListCart(db, userID)
	if len(lines) != 0 {
		t.Fatalf("cart has %d lines after clear, want 0", len(lines))
	}
}

func TestCheckoutAppliesAllDecrements(t *testing.T) {
	db := openTestDB(t)
	para := seedMedicine(t, db, "Paracetamol", 20, 10)
	amox := seedMedicine(t, db, "Amoxicillin", 45, 10)

	err := Checkout(db, []CheckoutItem{
		{ID: para.ID, Qty: 4},
		{ID: amox.ID, Qty: 2},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	var got models.Medicine
	db.First(&got, para.ID)
	if got.Stock != 6 {
		t.Fatalf("paracetamol stock = %d, want 6", got.Stock)
	}
	got = models.Medicine{}
	db.First(&got, amox.ID)
	if got.Stock != 8 {
		t.Fatalf("amoxicillin stock = %d, want 8", got.Stock)
	}
}

func TestCheckoutInsufficientStockFailsWholeRequest(t *testing.T) {
	db := openTestDB(t)
	para := seedMedicine(t, db, "Paracetamol", 20, 10)
	amox := seedMedicine(t, db, "Amoxicillin", 45, 1)

	err := Checkout(db, []CheckoutItem{
		{ID: para.ID, Qty: 4},
		{ID: amox.ID, Qty: 2},
	})
	if !errors.Is(err, models.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if !strings.Contains(err.Error(), "Amoxicillin") {
		t.Fatalf("err = %q, want it to name the offending medicine", err)
	}

	// Nothing was applied.
	var got models.Medicine
	db.First(&got, para.ID)
	if got.Stock != 10 {
		t.Fatalf("paracetamol stock = %d after failed checkout, want 10", got.Stock)
	}
	got = models.Medicine{}
	db.First(&got, amox.ID)
	if got.Stock != 1 {
		t.Fatalf("amoxicillin stock = %d after failed checkout, want 1", got.Stock)
	}
}

func TestCheckoutUnknownMedicine(t *testing.T) {
	db := openTestDB(t)

	err := Checkout(db, []CheckoutItem{{ID: 999, Qty: 1}})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCheckoutEmptyItems(t *testing.T) {
	db := openTestDB(t)

	if err := Checkout(db, nil); !errors.Is(err, models.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestConcurrentCheckoutNeverOversells(t *testing.T) {
	db := openTestDB(t)
	med := seedMedicine(t, db, "Paracetamol", 20, 5)

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- Checkout(db, []CheckoutItem{{ID: med.ID, Qty: 1}})
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		}
	}

	if successes > 5 {
		t.Fatalf("%d checkouts succeeded against stock 5 (oversold)", successes)
	}

	var got models.Medicine
	db.First(&got, med.ID)
	if got.Stock < 0 {
		t.Fatalf("stock = %d, must never go negative", got.Stock)
	}
	if got.Stock != 5-successes {
		t.Fatalf("stock = %d with %d successes, want %d", got.Stock, successes, 5-successes)
	}
}
