package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer is the shop profile for an externally managed user account.
// Authentication and the account itself live in the identity provider;
// only the account ID is stored here.
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"user_id"` // external account ID
	Phone     string         `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address   string         `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Reviews []Review      `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Likes   []ProductLike `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Orders  []Order       `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Cart    *Cart         `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
