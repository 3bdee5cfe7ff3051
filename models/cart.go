package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cartId"`
	UserID    uint       `gorm:"uniqueIndex" json:"userId"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Revision  uint       `gorm:"not null;default:0" json:"-"` // bumped on every write, stale writers lose
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"index" json:"-"`
	ProductID uint      `json:"productId"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Image     string    `json:"img"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}
