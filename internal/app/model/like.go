package model

import "time"

// ProductLike marks that a customer likes a product. The composite unique
// index keeps each (customer, product) pair to a single row; no soft
// delete here so the index stays enforceable after an unlike.
type ProductLike struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_product_likes_customer_product" json:"customer_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_product_likes_customer_product" json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProductLike) TableName() string {
	return "product_likes"
}
