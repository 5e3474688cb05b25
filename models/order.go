package models

import "time"

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref         string      `gorm:"uniqueIndex;not null" json:"ref"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderItem snapshots a cart line at placement time. MedicineName is
// denormalized on purpose: later catalog edits must not rewrite history.
// Price is the line subtotal, not the unit price.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	MedicineName string  `json:"medicine_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}
