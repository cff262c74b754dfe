package service

import (
	"context"
	"errors"
	"time"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"github.com/kingoftech-v01/shop-backend/pkg/redis"
	"github.com/kingoftech-v01/shop-backend/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrDiscountNotFound     = errors.New("discount not found")
	ErrDiscountCodeNotFound = errors.New("discount code not found")
	ErrDiscountCodeInvalid  = errors.New("discount code is not valid")
	ErrDiscountWindow       = errors.New("discount window end precedes start")
)

// ActiveDiscountCacheKey is where the scheduler publishes the currently
// active discount set.
const ActiveDiscountCacheKey = "discounts:active"

const activeDiscountCacheTTL = 2 * time.Hour

type CreateDiscountInput struct {
	Name       string
	Percentage decimal.Decimal
	Value      *decimal.Decimal
	StartTime  time.Time
	EndTime    time.Time
}

type CreateCodeInput struct {
	DiscountID uint
	Code       string // generated when empty
	UsageLimit *uint
	ValidFrom  time.Time
	ValidTo    time.Time
}

type DiscountService interface {
	CreateDiscount(input CreateDiscountInput) (*model.Discount, error)
	GetDiscount(id uint) (*model.Discount, error)
	AttachToProducts(discountID uint, productIDs []uint) error
	AttachToCategories(discountID uint, categoryIDs []uint) error
	CreateCode(input CreateCodeInput) (*model.DiscountCode, error)
	ValidateCode(code string) (*model.DiscountCode, error)
	RedeemCode(code string) (*model.DiscountCode, error)
	RefreshActiveDiscountCache(ctx context.Context) error
}

type discountService struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
}

func NewDiscountService(
	discountRepo repository.DiscountRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	db *gorm.DB,
) DiscountService {
	return &discountService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		db:           db,
	}
}

func (s *discountService) CreateDiscount(input CreateDiscountInput) (*model.Discount, error) {
	if input.EndTime.Before(input.StartTime) {
		return nil, ErrDiscountWindow
	}

	discount := &model.Discount{
		Name:       input.Name,
		Percentage: input.Percentage,
		Value:      input.Value,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
	}
	if err := s.discountRepo.Create(discount); err != nil {
		return nil, err
	}

	logger.Info("Discount created", map[string]interface{}{
		"discount_id": discount.ID,
		"name":        discount.Name,
		"percentage":  discount.Percentage,
	})
	return discount, nil
}

func (s *discountService) GetDiscount(id uint) (*model.Discount, error) {
	discount, err := s.discountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return discount, nil
}

func (s *discountService) AttachToProducts(discountID uint, productIDs []uint) error {
	discount, err := s.GetDiscount(discountID)
	if err != nil {
		return err
	}

	products := make([]model.Product, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := s.productRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		products = append(products, *product)
	}

	return s.discountRepo.AttachProducts(discount, products)
}

func (s *discountService) AttachToCategories(discountID uint, categoryIDs []uint) error {
	discount, err := s.GetDiscount(discountID)
	if err != nil {
		return err
	}

	categories := make([]model.Category, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		category, err := s.categoryRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		categories = append(categories, *category)
	}

	return s.discountRepo.AttachCategories(discount, categories)
}

func (s *discountService) CreateCode(input CreateCodeInput) (*model.DiscountCode, error) {
	if _, err := s.GetDiscount(input.DiscountID); err != nil {
		return nil, err
	}
	if input.ValidTo.Before(input.ValidFrom) {
		return nil, ErrDiscountWindow
	}

	codeValue := input.Code
	if codeValue == "" {
		generated, err := util.GenerateDiscountCode(10)
		if err != nil {
			return nil, err
		}
		codeValue = generated
	}

	code := &model.DiscountCode{
		Code:       codeValue,
		DiscountID: input.DiscountID,
		UsageLimit: input.UsageLimit,
		ValidFrom:  input.ValidFrom,
		ValidTo:    input.ValidTo,
	}
	if err := s.discountRepo.CreateCode(code); err != nil {
		return nil, err
	}

	logger.Info("Discount code created", map[string]interface{}{
		"code":        code.Code,
		"discount_id": code.DiscountID,
		"usage_limit": code.UsageLimit,
	})
	return code, nil
}

// ValidateCode checks redeemability without consuming a use.
func (s *discountService) ValidateCode(code string) (*model.DiscountCode, error) {
	discountCode, err := s.discountRepo.FindCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountCodeNotFound
		}
		return nil, err
	}
	if !discountCode.IsValid() {
		return nil, ErrDiscountCodeInvalid
	}
	return discountCode, nil
}

// RedeemCode consumes one use of the code. The increment is a guarded
// UPDATE re-checking the usage limit, so parallel redemptions cannot
// push used_count past the cap.
func (s *discountService) RedeemCode(code string) (*model.DiscountCode, error) {
	discountCode, err := s.ValidateCode(code)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&model.DiscountCode{}).
		Where("id = ?", discountCode.ID).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Update("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		logger.Error("Failed to redeem discount code", result.Error, map[string]interface{}{
			"code": code,
		})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Limit was reached between the validity check and the update.
		return nil, ErrDiscountCodeInvalid
	}

	discountCode.UsedCount++
	logger.Info("Discount code redeemed", map[string]interface{}{
		"code":       discountCode.Code,
		"used_count": discountCode.UsedCount,
	})
	return discountCode, nil
}

// RefreshActiveDiscountCache publishes the discounts active right now to
// Redis for read-heavy consumers. Called hourly by the scheduler.
func (s *discountService) RefreshActiveDiscountCache(ctx context.Context) error {
	now := time.Now()

	discounts, err := s.discountRepo.FindActive(now)
	if err != nil {
		return err
	}

	if err := redis.SetJSON(ctx, ActiveDiscountCacheKey, discounts, activeDiscountCacheTTL); err != nil {
		return err
	}

	logger.Info("Active discount cache refreshed", map[string]interface{}{
		"count": len(discounts),
	})
	return nil
}
