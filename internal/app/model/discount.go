package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount is a time-windowed promotion attached to individual products
// and/or whole categories. Percentage is the reduction in percent
// (10.00 = 10%); Value is an optional fixed amount off.
type Discount struct {
	ID         uint             `gorm:"primarykey" json:"id"`
	Name       string           `gorm:"type:varchar(64);not null" json:"name"`
	Percentage decimal.Decimal  `gorm:"type:numeric(4,2);not null" json:"percentage"`
	Value      *decimal.Decimal `gorm:"type:numeric(10,2)" json:"value,omitempty"`
	StartTime  time.Time        `gorm:"not null" json:"start_time"`
	EndTime    time.Time        `gorm:"not null" json:"end_time"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Products   []Product  `gorm:"many2many:discount_products" json:"products,omitempty"`
	Categories []Category `gorm:"many2many:discount_categories" json:"categories,omitempty"`
	Codes      []DiscountCode `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Discount) TableName() string {
	return "discounts"
}

// IsActiveAt reports whether now falls inside [StartTime, EndTime].
// Both ends are inclusive.
func (d *Discount) IsActiveAt(now time.Time) bool {
	return !now.Before(d.StartTime) && !now.After(d.EndTime)
}

// IsActive reports whether the discount window contains the current time.
func (d *Discount) IsActive() bool {
	return d.IsActiveAt(time.Now())
}

// DiscountCode is a redeemable token activating a Discount. A nil
// UsageLimit means unlimited redemptions.
type DiscountCode struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Code       string         `gorm:"type:varchar(32);uniqueIndex:idx_discount_codes_code;not null" json:"code"`
	DiscountID uint           `gorm:"not null;index" json:"discount_id"`
	UsageLimit *uint          `json:"usage_limit,omitempty"`
	UsedCount  uint           `gorm:"not null;default:0" json:"used_count"`
	ValidFrom  time.Time      `gorm:"not null" json:"valid_from"`
	ValidTo    time.Time      `gorm:"not null" json:"valid_to"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Discount Discount `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE" json:"discount,omitempty"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}

// IsValidAt reports whether the code can be redeemed at now: inside the
// validity window and under the usage limit. It never mutates UsedCount;
// incrementing happens at redemption time.
func (c *DiscountCode) IsValidAt(now time.Time) bool {
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return false
	}
	return c.UsageLimit == nil || c.UsedCount < *c.UsageLimit
}

// IsValid reports whether the code can be redeemed right now.
func (c *DiscountCode) IsValid() bool {
	return c.IsValidAt(time.Now())
}
