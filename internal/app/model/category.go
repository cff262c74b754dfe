package model

import (
	"time"

	"gorm.io/gorm"
)

// Category is a node in the catalog tree. A nil ParentID marks a root
// category. Deleting a parent detaches its children (ParentID goes NULL)
// instead of cascading; products of the deleted category go with it.
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	ParentID    *uint          `gorm:"index" json:"parent_id,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Products []Product  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// DisplayName renders the category with its parent prefix when the parent
// association is loaded, e.g. "Audio > Headphones".
func (c *Category) DisplayName() string {
	if c.Parent != nil {
		return c.Parent.DisplayName() + " > " + c.Name
	}
	return c.Name
}
