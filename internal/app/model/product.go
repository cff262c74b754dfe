package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductKind string

const (
	KindProduct ProductKind = "product"
	KindPackage ProductKind = "package"
)

// Product is a sellable catalog entry. A Kind of "package" marks a bundle
// whose constituents are listed in PackageContent; the relation is
// asymmetric: a package lists its contents, a product does not list the
// packages it appears in.
type Product struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	Name           string          `gorm:"type:varchar(128);not null" json:"name"`
	Slug           string          `gorm:"type:varchar(128);uniqueIndex:idx_products_slug;not null" json:"slug"`
	Description    string          `gorm:"type:text" json:"description,omitempty"`
	CategoryID     uint            `gorm:"not null;index" json:"category_id"`
	Kind           ProductKind     `gorm:"type:varchar(10);not null;default:'product'" json:"kind"`
	Price          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock          int             `gorm:"not null;default:0" json:"stock"`
	Image          string          `json:"image,omitempty"` // path in external media storage
	IsLimited      bool            `gorm:"not null;default:false" json:"is_limited"`
	TimesPurchased int             `gorm:"not null;default:0" json:"times_purchased"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Category       Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Tags           []Tag          `gorm:"many2many:product_tags" json:"tags,omitempty"`
	Images         []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reviews        []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Likes          []ProductLike  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Discounts      []Discount     `gorm:"many2many:discount_products" json:"-"`
	PackageContent []Product      `gorm:"many2many:package_contents;joinForeignKey:PackageID;joinReferences:ItemID" json:"package_content,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// IsPackage reports whether this product is a bundle of other products.
func (p *Product) IsPackage() bool {
	return p.Kind == KindPackage
}

// ProductImage is one entry in a product's gallery. The binary lives in
// external media storage; Image holds its path.
type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Image     string         `gorm:"not null" json:"image"`
	Caption   *string        `gorm:"type:varchar(255)" json:"caption,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
