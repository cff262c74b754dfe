package service

import (
	"errors"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	apperrors "github.com/kingoftech-v01/shop-backend/internal/errors"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrLikeAlreadyExists = errors.New("product already liked")
	ErrLikeNotFound      = errors.New("product like not found")
)

type LikeService interface {
	LikeProduct(customerID, productID uint) (*model.ProductLike, error)
	UnlikeProduct(customerID, productID uint) error
	GetCustomerLikes(customerID uint) ([]model.ProductLike, error)
	CountProductLikes(productID uint) (int64, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	productRepo repository.ProductRepository
}

func NewLikeService(likeRepo repository.LikeRepository, productRepo repository.ProductRepository) LikeService {
	return &likeService{likeRepo: likeRepo, productRepo: productRepo}
}

func (s *likeService) LikeProduct(customerID, productID uint) (*model.ProductLike, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	exists, err := s.likeRepo.Exists(customerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrLikeAlreadyExists
	}

	like := &model.ProductLike{CustomerID: customerID, ProductID: productID}
	if err := s.likeRepo.Create(like); err != nil {
		// A concurrent like can slip past the Exists check and land on
		// the unique index instead.
		if apperrors.ParseError(err, "like").Code == apperrors.LikeAlreadyExists {
			return nil, ErrLikeAlreadyExists
		}
		return nil, err
	}

	logger.Info("Product liked", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return like, nil
}

func (s *likeService) UnlikeProduct(customerID, productID uint) error {
	if err := s.likeRepo.Delete(customerID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLikeNotFound
		}
		return err
	}
	return nil
}

func (s *likeService) GetCustomerLikes(customerID uint) ([]model.ProductLike, error) {
	return s.likeRepo.FindByCustomerID(customerID)
}

func (s *likeService) CountProductLikes(productID uint) (int64, error) {
	return s.likeRepo.CountByProductID(productID)
}
