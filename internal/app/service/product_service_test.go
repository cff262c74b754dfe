package service

import (
	"testing"
	"time"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*gorm.DB, ProductService, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewCategoryRepository(testDB),
		repository.NewTagRepository(testDB),
		repository.NewDiscountRepository(testDB),
		repository.NewReviewRepository(testDB),
	)

	category := &model.Category{Name: "Electronics"}
	require.NoError(t, testDB.Create(category).Error)

	return testDB, svc, category
}

func TestProductService_CreateProduct(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(CreateProductInput{
		Name:       "Wireless Headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
		Stock:      10,
		TagNames:   []string{"new", "bestseller"},
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	// Slug falls back to the name.
	assert.Equal(t, "wireless-headphones", product.Slug)
	assert.Len(t, product.Tags, 2)
}

func TestProductService_CreateProduct_DuplicateSlug(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.CreateProduct(CreateProductInput{
		Name:       "Headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(CreateProductInput{
		Name:       "Headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(149),
	})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestProductService_CreateProduct_UnknownCategory(t *testing.T) {
	testDB, svc, _ := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.CreateProduct(CreateProductInput{
		Name:       "Orphan",
		CategoryID: 9999,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductService_SetPackageContent(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	item, err := svc.CreateProduct(CreateProductInput{
		Name:       "Shampoo",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(8),
		Stock:      50,
	})
	require.NoError(t, err)

	pkg, err := svc.CreateProduct(CreateProductInput{
		Name:       "Hair Care Set",
		CategoryID: category.ID,
		Kind:       model.KindPackage,
		Price:      decimal.NewFromInt(15),
		Stock:      20,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetPackageContent(pkg.ID, []uint{item.ID}))

	found, err := svc.GetProduct(pkg.ID)
	require.NoError(t, err)
	require.Len(t, found.PackageContent, 1)
	assert.Equal(t, item.ID, found.PackageContent[0].ID)
}

func TestProductService_SetPackageContent_NotPackage(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	plain, err := svc.CreateProduct(CreateProductInput{
		Name:       "Plain Product",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	err = svc.SetPackageContent(plain.ID, []uint{plain.ID})
	assert.ErrorIs(t, err, ErrNotPackage)
}

func TestProductService_SetPackageContent_SelfReference(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	pkg, err := svc.CreateProduct(CreateProductInput{
		Name:       "Bundle",
		CategoryID: category.ID,
		Kind:       model.KindPackage,
		Price:      decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	err = svc.SetPackageContent(pkg.ID, []uint{pkg.ID})
	assert.ErrorIs(t, err, ErrPackageSelfRef)
}

func TestProductService_BestActiveDiscount_CategoryWins(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(CreateProductInput{
		Name:       "Headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
		Stock:      10,
	})
	require.NoError(t, err)

	now := time.Now()
	discountRepo := repository.NewDiscountRepository(testDB)

	productDeal := &model.Discount{
		Name:       "Product Deal",
		Percentage: decimal.NewFromInt(10),
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(time.Hour),
	}
	require.NoError(t, discountRepo.Create(productDeal))
	require.NoError(t, discountRepo.AttachProducts(productDeal, []model.Product{*product}))

	categoryDeal := &model.Discount{
		Name:       "Category Deal",
		Percentage: decimal.NewFromInt(15),
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(time.Hour),
	}
	require.NoError(t, discountRepo.Create(categoryDeal))
	require.NoError(t, discountRepo.AttachCategories(categoryDeal, []model.Category{*category}))

	best, err := svc.BestActiveDiscountAt(product.ID, now)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "Category Deal", best.Name)
	assert.True(t, best.Percentage.Equal(decimal.NewFromInt(15)))
}

func TestProductService_BestActiveDiscount_None(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(CreateProductInput{
		Name:       "Headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
	})
	require.NoError(t, err)

	best, err := svc.BestActiveDiscountAt(product.ID, time.Now())
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestProductService_BestActiveDiscount_IgnoresExpired(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(CreateProductInput{
		Name:       "Headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
	})
	require.NoError(t, err)

	now := time.Now()
	discountRepo := repository.NewDiscountRepository(testDB)

	expired := &model.Discount{
		Name:       "Gone",
		Percentage: decimal.NewFromInt(50),
		StartTime:  now.Add(-48 * time.Hour),
		EndTime:    now.Add(-24 * time.Hour),
	}
	require.NoError(t, discountRepo.Create(expired))
	require.NoError(t, discountRepo.AttachProducts(expired, []model.Product{*product}))

	best, err := svc.BestActiveDiscountAt(product.ID, now)
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestProductService_Overview(t *testing.T) {
	testDB, svc, category := setupProductServiceTest(t)
	defer db.CleanupTestDB(testDB)

	product, err := svc.CreateProduct(CreateProductInput{
		Name:       "Headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
	})
	require.NoError(t, err)

	customer := &model.Customer{UserID: 1}
	require.NoError(t, testDB.Create(customer).Error)

	for _, rating := range []int{5, 3, 4} {
		require.NoError(t, testDB.Create(&model.Review{
			ProductID:  product.ID,
			CustomerID: customer.ID,
			Rating:     rating,
		}).Error)
	}

	overview, err := svc.Overview(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.NumReviews)
	assert.InDelta(t, 4.0, overview.AvgRating, 0.001)
}
