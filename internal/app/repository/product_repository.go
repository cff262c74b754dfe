package repository

import (
	"fmt"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice      ProductSort = "price"
	ProductSortCreatedAt  ProductSort = "created_at"
	ProductSortBestseller ProductSort = "bestseller"
)

type ProductFilter struct {
	CategoryID    *uint
	Kind          *model.ProductKind
	TagName       string
	Search        string
	LimitedOnly   bool
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	ReplaceTags(product *model.Product, tags []model.Tag) error
	ReplacePackageContent(pkg *model.Product, items []model.Product) error
	AddImage(image *model.ProductImage) error
	DeleteImage(id uint) error
	UpdateStock(id uint, delta int) error
	IncrementTimesPurchased(id uint, count int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"category_id": product.CategoryID,
		"kind":        product.Kind,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"slug": product.Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Info("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Tags").
		Preload("Images")
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id": filter.CategoryID,
		"kind":        filter.Kind,
		"tag":         filter.TagName,
		"search":      filter.Search,
		"sort_by":     filter.SortBy,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})

	query := r.baseQuery()

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.Kind != nil {
		query = query.Where("products.kind = ?", *filter.Kind)
	}
	if filter.LimitedOnly {
		query = query.Where("products.is_limited = ?", true)
	}
	if filter.TagName != "" {
		query = query.
			Joins("JOIN product_tags ON product_tags.product_id = products.id").
			Joins("JOIN tags ON tags.id = product_tags.tag_id").
			Where("tags.name = ?", filter.TagName)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.price " + direction)
	case ProductSortBestseller:
		query = query.Order("products.times_purchased " + direction)
		query = query.Order("products.created_at DESC")
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.baseQuery().Preload("PackageContent").First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	err := r.baseQuery().Preload("PackageContent").
		Where("products.slug = ?", slug).
		First(&product).Error
	if err != nil {
		logger.Error("Failed to find product by slug in database", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// Delete removes the product and its dependents in one transaction.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return deleteProducts(tx, []uint{id})
	})
	if err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// deleteProducts removes products and every row referencing them:
// reviews, likes, images, cart items, order items and join-table rows.
// Shared with the category cascade.
func deleteProducts(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	if err := tx.Where("product_id IN ?", ids).Delete(&model.Review{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&model.ProductLike{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&model.ProductImage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM product_tags WHERE product_id IN ?", ids).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM discount_products WHERE product_id IN ?", ids).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM package_contents WHERE package_id IN ? OR item_id IN ?", ids, ids).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.Product{}).Error
}

func (r *productRepository) ReplaceTags(product *model.Product, tags []model.Tag) error {
	if err := r.db.Model(product).Association("Tags").Replace(tags); err != nil {
		logger.Error("Failed to replace product tags in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) ReplacePackageContent(pkg *model.Product, items []model.Product) error {
	if err := r.db.Model(pkg).Association("PackageContent").Replace(items); err != nil {
		logger.Error("Failed to replace package content in database", err, map[string]interface{}{
			"product_id": pkg.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) AddImage(image *model.ProductImage) error {
	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create product image in database", err, map[string]interface{}{
			"product_id": image.ProductID,
		})
		return err
	}
	return nil
}

func (r *productRepository) DeleteImage(id uint) error {
	if err := r.db.Delete(&model.ProductImage{}, id).Error; err != nil {
		logger.Error("Failed to delete product image from database", err, map[string]interface{}{
			"image_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateStock(id uint, delta int) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
		logger.Error("Failed to update product stock in database", err, map[string]interface{}{
			"product_id": id,
			"delta":      delta,
		})
		return err
	}
	return nil
}

func (r *productRepository) IncrementTimesPurchased(id uint, count int) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("times_purchased", gorm.Expr("times_purchased + ?", count)).Error; err != nil {
		logger.Error("Failed to increment times purchased in database", err, map[string]interface{}{
			"product_id": id,
			"count":      count,
		})
		return err
	}
	return nil
}
