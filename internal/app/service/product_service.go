package service

import (
	"errors"
	"time"

	"github.com/gosimple/slug"
	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	apperrors "github.com/kingoftech-v01/shop-backend/internal/errors"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugTaken        = errors.New("product slug is already taken")
	ErrNotPackage       = errors.New("product is not a package")
	ErrPackageSelfRef   = errors.New("package cannot contain itself")
)

type CreateProductInput struct {
	Name        string
	Slug        string // derived from Name when empty
	Description string
	CategoryID  uint
	Kind        model.ProductKind
	Price       decimal.Decimal
	Stock       int
	Image       string
	IsLimited   bool
	TagNames    []string
}

type ProductService interface {
	CreateProduct(input CreateProductInput) (*model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	SetPackageContent(packageID uint, itemIDs []uint) error
	BestActiveDiscountAt(productID uint, now time.Time) (*model.Discount, error)
	BestActiveDiscount(productID uint) (*model.Discount, error)
	Overview(productID uint) (model.ReviewOverview, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	discountRepo repository.DiscountRepository
	reviewRepo   repository.ReviewRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	discountRepo repository.DiscountRepository,
	reviewRepo repository.ReviewRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		discountRepo: discountRepo,
		reviewRepo:   reviewRepo,
	}
}

func (s *productService) CreateProduct(input CreateProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
		"kind":        input.Kind,
	})

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = model.KindProduct
	}
	productSlug := input.Slug
	if productSlug == "" {
		productSlug = slug.Make(input.Name)
	}

	product := &model.Product{
		Name:        input.Name,
		Slug:        productSlug,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Kind:        kind,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       input.Image,
		IsLimited:   input.IsLimited,
	}
	if err := s.productRepo.Create(product); err != nil {
		if apperrors.ParseError(err, "product").Code == apperrors.ProductSlugExists {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if len(input.TagNames) > 0 {
		tags := make([]model.Tag, 0, len(input.TagNames))
		for _, name := range input.TagNames {
			tag, err := s.tagRepo.FindByName(name)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
				tag = &model.Tag{Name: name}
				if err := s.tagRepo.Create(tag); err != nil {
					return nil, err
				}
			}
			tags = append(tags, *tag)
		}
		if err := s.productRepo.ReplaceTags(product, tags); err != nil {
			return nil, err
		}
	}

	return s.productRepo.FindByID(product.ID)
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductBySlug(productSlug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) UpdateProduct(product *model.Product) error {
	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

// SetPackageContent replaces the constituent list of a package. Only
// products of kind "package" carry contents, and a package never lists
// itself.
func (s *productService) SetPackageContent(packageID uint, itemIDs []uint) error {
	pkg, err := s.productRepo.FindByID(packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if !pkg.IsPackage() {
		return ErrNotPackage
	}

	items := make([]model.Product, 0, len(itemIDs))
	for _, id := range itemIDs {
		if id == packageID {
			return ErrPackageSelfRef
		}
		item, err := s.productRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		items = append(items, *item)
	}

	return s.productRepo.ReplacePackageContent(pkg, items)
}

// BestActiveDiscountAt returns the highest-percentage discount active at
// now among those attached to the product and to its category, or nil
// when none is active. When percentages tie, the first discount scanned
// wins (product-attached before category-attached); the tie-break is
// implementation-defined, not a priority rule.
func (s *productService) BestActiveDiscountAt(productID uint, now time.Time) (*model.Discount, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	discounts, err := s.discountRepo.FindActiveForProduct(product.ID, product.CategoryID, now)
	if err != nil {
		return nil, err
	}
	if len(discounts) == 0 {
		return nil, nil
	}

	best := discounts[0]
	for _, d := range discounts[1:] {
		if d.Percentage.GreaterThan(best.Percentage) {
			best = d
		}
	}

	logger.Debug("Best active discount selected", map[string]interface{}{
		"product_id":  productID,
		"discount_id": best.ID,
		"percentage":  best.Percentage,
		"candidates":  len(discounts),
	})
	return &best, nil
}

func (s *productService) BestActiveDiscount(productID uint) (*model.Discount, error) {
	return s.BestActiveDiscountAt(productID, time.Now())
}

// Overview returns the mean rating and review count for a product.
func (s *productService) Overview(productID uint) (model.ReviewOverview, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ReviewOverview{}, ErrProductNotFound
		}
		return model.ReviewOverview{}, err
	}
	return s.reviewRepo.Overview(productID)
}
