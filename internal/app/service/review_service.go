package service

import (
	"errors"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

type ReviewService interface {
	CreateReview(customerID, productID uint, rating int, text string) (*model.Review, error)
	GetProductReviews(productID uint, limit, offset int) ([]model.Review, error)
	GetCustomerReviews(customerID uint) ([]model.Review, error)
	DeleteReview(id uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *reviewService) CreateReview(customerID, productID uint, rating int, text string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := &model.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     rating,
		Text:       text,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":   review.ID,
		"product_id":  productID,
		"customer_id": customerID,
		"rating":      rating,
	})
	return s.reviewRepo.FindByID(review.ID)
}

func (s *reviewService) GetProductReviews(productID uint, limit, offset int) ([]model.Review, error) {
	return s.reviewRepo.FindByProductID(productID, limit, offset)
}

func (s *reviewService) GetCustomerReviews(customerID uint) ([]model.Review, error) {
	return s.reviewRepo.FindByCustomerID(customerID)
}

func (s *reviewService) DeleteReview(id uint) error {
	return s.reviewRepo.Delete(id)
}
