package models

import "time"

// CartItem is one cart line. The unique index enforces at most one line per
// (user, medicine) pair; repeat adds bump Quantity instead of inserting.
type CartItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_cart_user_medicine" json:"user_id"`
	MedicineID uint      `gorm:"not null;uniqueIndex:idx_cart_user_medicine" json:"medicine_id"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}
