package repository

import (
	"time"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(discount *model.Discount) error
	FindByID(id uint) (*model.Discount, error)
	FindActive(now time.Time) ([]model.Discount, error)
	FindActiveForProduct(productID, categoryID uint, now time.Time) ([]model.Discount, error)
	AttachProducts(discount *model.Discount, products []model.Product) error
	AttachCategories(discount *model.Discount, categories []model.Category) error
	Update(discount *model.Discount) error
	Delete(id uint) error

	CreateCode(code *model.DiscountCode) error
	FindCode(code string) (*model.DiscountCode, error)
	IncrementCodeUsage(tx *gorm.DB, id uint) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(discount *model.Discount) error {
	logger.Debug("Creating discount in database", map[string]interface{}{
		"name":       discount.Name,
		"percentage": discount.Percentage,
		"start_time": discount.StartTime,
		"end_time":   discount.EndTime,
	})

	if err := r.db.Create(discount).Error; err != nil {
		logger.Error("Failed to create discount in database", err, map[string]interface{}{
			"name": discount.Name,
		})
		return err
	}
	return nil
}

func (r *discountRepository) FindByID(id uint) (*model.Discount, error) {
	var discount model.Discount
	err := r.db.Preload("Products").Preload("Categories").First(&discount, id).Error
	if err != nil {
		logger.Error("Failed to find discount by ID in database", err, map[string]interface{}{
			"discount_id": id,
		})
		return nil, err
	}
	return &discount, nil
}

// FindActive returns every discount whose window contains now, both ends
// inclusive.
func (r *discountRepository) FindActive(now time.Time) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.Where("start_time <= ? AND end_time >= ?", now, now).
		Preload("Products").
		Preload("Categories").
		Find(&discounts).Error
	if err != nil {
		logger.Error("Failed to find active discounts in database", err, nil)
		return nil, err
	}
	return discounts, nil
}

// FindActiveForProduct returns active discounts attached to the product
// directly, then those attached to its category. The ordering matters:
// on equal percentages the first row scanned wins the best-discount
// selection.
func (r *discountRepository) FindActiveForProduct(productID, categoryID uint, now time.Time) ([]model.Discount, error) {
	var productDiscounts []model.Discount
	err := r.db.
		Joins("JOIN discount_products ON discount_products.discount_id = discounts.id").
		Where("discount_products.product_id = ?", productID).
		Where("discounts.start_time <= ? AND discounts.end_time >= ?", now, now).
		Find(&productDiscounts).Error
	if err != nil {
		logger.Error("Failed to find product discounts in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	var categoryDiscounts []model.Discount
	err = r.db.
		Joins("JOIN discount_categories ON discount_categories.discount_id = discounts.id").
		Where("discount_categories.category_id = ?", categoryID).
		Where("discounts.start_time <= ? AND discounts.end_time >= ?", now, now).
		Find(&categoryDiscounts).Error
	if err != nil {
		logger.Error("Failed to find category discounts in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}

	return append(productDiscounts, categoryDiscounts...), nil
}

func (r *discountRepository) AttachProducts(discount *model.Discount, products []model.Product) error {
	if err := r.db.Model(discount).Association("Products").Append(products); err != nil {
		logger.Error("Failed to attach products to discount in database", err, map[string]interface{}{
			"discount_id": discount.ID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) AttachCategories(discount *model.Discount, categories []model.Category) error {
	if err := r.db.Model(discount).Association("Categories").Append(categories); err != nil {
		logger.Error("Failed to attach categories to discount in database", err, map[string]interface{}{
			"discount_id": discount.ID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) Update(discount *model.Discount) error {
	if err := r.db.Save(discount).Error; err != nil {
		logger.Error("Failed to update discount in database", err, map[string]interface{}{
			"discount_id": discount.ID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM discount_products WHERE discount_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM discount_categories WHERE discount_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("discount_id = ?", id).Delete(&model.DiscountCode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Discount{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete discount from database", err, map[string]interface{}{
			"discount_id": id,
		})
		return err
	}
	return nil
}

func (r *discountRepository) CreateCode(code *model.DiscountCode) error {
	logger.Debug("Creating discount code in database", map[string]interface{}{
		"code":        code.Code,
		"discount_id": code.DiscountID,
		"usage_limit": code.UsageLimit,
	})

	if err := r.db.Create(code).Error; err != nil {
		logger.Error("Failed to create discount code in database", err, map[string]interface{}{
			"code": code.Code,
		})
		return err
	}
	return nil
}

func (r *discountRepository) FindCode(code string) (*model.DiscountCode, error) {
	var discountCode model.DiscountCode
	err := r.db.Preload("Discount").Where("code = ?", code).First(&discountCode).Error
	if err != nil {
		logger.Error("Failed to find discount code in database", err, map[string]interface{}{
			"code": code,
		})
		return nil, err
	}
	return &discountCode, nil
}

// IncrementCodeUsage bumps used_count as a single SQL expression so
// concurrent redemptions never lose an increment. Runs on the caller's
// transaction.
func (r *discountRepository) IncrementCodeUsage(tx *gorm.DB, id uint) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Model(&model.DiscountCode{}).Where("id = ?", id).
		Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
		logger.Error("Failed to increment discount code usage in database", err, map[string]interface{}{
			"discount_code_id": id,
		})
		return err
	}
	return nil
}
