package model

import (
	"time"

	"gorm.io/gorm"
)

// Review is a customer's rating of a product, 1 to 5, with optional text.
type Review struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProductID  uint           `gorm:"not null;index" json:"product_id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	Rating     int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Text       string         `gorm:"type:text" json:"text,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Product  Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewOverview is the query-time aggregate for a product's reviews.
// AvgRating is 0 when the product has no reviews.
type ReviewOverview struct {
	AvgRating  float64 `json:"avg_rating"`
	NumReviews int64   `json:"num_reviews"`
}
