package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag labels products for filtering (e.g. "new", "bestseller").
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(64);uniqueIndex:idx_tags_name;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"many2many:product_tags" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}
