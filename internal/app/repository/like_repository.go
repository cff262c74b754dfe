package repository

import (
	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.ProductLike) error
	FindByCustomerID(customerID uint) ([]model.ProductLike, error)
	Exists(customerID, productID uint) (bool, error)
	CountByProductID(productID uint) (int64, error)
	Delete(customerID, productID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like; a duplicate (customer, product) pair fails on
// the unique index and the constraint error is returned as-is for the
// caller to classify.
func (r *likeRepository) Create(like *model.ProductLike) error {
	logger.Debug("Creating product like in database", map[string]interface{}{
		"customer_id": like.CustomerID,
		"product_id":  like.ProductID,
	})

	if err := r.db.Create(like).Error; err != nil {
		logger.Error("Failed to create product like in database", err, map[string]interface{}{
			"customer_id": like.CustomerID,
			"product_id":  like.ProductID,
		})
		return err
	}
	return nil
}

func (r *likeRepository) FindByCustomerID(customerID uint) ([]model.ProductLike, error) {
	var likes []model.ProductLike
	err := r.db.Where("customer_id = ?", customerID).
		Preload("Product").
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		logger.Error("Failed to find likes by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return likes, nil
}

func (r *likeRepository) Exists(customerID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProductLike{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check product like existence in database", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) CountByProductID(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProductLike{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count product likes in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, err
	}
	return count, nil
}

func (r *likeRepository) Delete(customerID, productID uint) error {
	result := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&model.ProductLike{})
	if result.Error != nil {
		logger.Error("Failed to delete product like from database", result.Error, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
