package models

type Medicine struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	Liked       bool    `gorm:"default:false" json:"liked"`
	Image       string  `json:"image"`
}
