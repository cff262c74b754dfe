package repository

import (
	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByProductID(productID uint, limit, offset int) ([]model.Review, error)
	FindByCustomerID(customerID uint) ([]model.Review, error)
	Overview(productID uint) (model.ReviewOverview, error)
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"product_id":  review.ProductID,
		"customer_id": review.CustomerID,
		"rating":      review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"product_id":  review.ProductID,
			"customer_id": review.CustomerID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("Customer").First(&review, id).Error; err != nil {
		logger.Error("Failed to find review by ID in database", err, map[string]interface{}{
			"review_id": id,
		})
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByProductID(productID uint, limit, offset int) ([]model.Review, error) {
	var reviews []model.Review
	query := r.db.Where("product_id = ?", productID).
		Preload("Customer").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews by product ID in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByCustomerID(customerID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return reviews, nil
}

// Overview aggregates the mean rating and review count in one query.
// A product without reviews yields avg 0, count 0.
func (r *reviewRepository) Overview(productID uint) (model.ReviewOverview, error) {
	var overview model.ReviewOverview
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS num_reviews").
		Where("product_id = ?", productID).
		Scan(&overview).Error
	if err != nil {
		logger.Error("Failed to aggregate review overview in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return model.ReviewOverview{}, err
	}
	return overview, nil
}

func (r *reviewRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}
