package model

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the pre-order holding area, one per customer. After checkout the
// cart is flagged Ordered with the checkout timestamp and its items are
// cleared.
type Cart struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CustomerID  uint           `gorm:"not null;uniqueIndex" json:"customer_id"`
	Ordered     bool           `gorm:"not null;default:false" json:"ordered"`
	OrderedDate *time.Time     `json:"ordered_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Customer Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Items    []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem holds one product in a cart. The composite unique index keeps
// each (cart, product) pair to a single row; quantity changes update the
// existing row. No soft delete so the index stays enforceable.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`

	Cart    Cart    `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
