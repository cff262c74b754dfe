package repository

import (
	"testing"
	"time"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDiscountTest(t *testing.T) (*gorm.DB, DiscountRepository, *model.Category, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewDiscountRepository(testDB)

	category := &model.Category{Name: "Electronics"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		Name:       "Headphones",
		Slug:       "headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
		Stock:      10,
	}
	require.NoError(t, testDB.Create(product).Error)

	return testDB, repo, category, product
}

func makeDiscount(name string, percentage int64, start, end time.Time) *model.Discount {
	return &model.Discount{
		Name:       name,
		Percentage: decimal.NewFromInt(percentage),
		StartTime:  start,
		EndTime:    end,
	}
}

func TestDiscountRepository_FindActive(t *testing.T) {
	testDB, repo, _, _ := setupDiscountTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()

	active := makeDiscount("Current", 10, now.Add(-time.Hour), now.Add(time.Hour))
	expired := makeDiscount("Expired", 20, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	upcoming := makeDiscount("Upcoming", 30, now.Add(24*time.Hour), now.Add(48*time.Hour))
	require.NoError(t, repo.Create(active))
	require.NoError(t, repo.Create(expired))
	require.NoError(t, repo.Create(upcoming))

	discounts, err := repo.FindActive(now)
	require.NoError(t, err)
	require.Len(t, discounts, 1)
	assert.Equal(t, "Current", discounts[0].Name)
}

func TestDiscountRepository_FindActiveForProduct(t *testing.T) {
	testDB, repo, category, product := setupDiscountTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()

	productDiscount := makeDiscount("Product Deal", 10, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, repo.Create(productDiscount))
	require.NoError(t, repo.AttachProducts(productDiscount, []model.Product{*product}))

	categoryDiscount := makeDiscount("Category Deal", 15, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, repo.Create(categoryDiscount))
	require.NoError(t, repo.AttachCategories(categoryDiscount, []model.Category{*category}))

	expired := makeDiscount("Old Deal", 50, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, repo.Create(expired))
	require.NoError(t, repo.AttachProducts(expired, []model.Product{*product}))

	discounts, err := repo.FindActiveForProduct(product.ID, product.CategoryID, now)
	require.NoError(t, err)
	require.Len(t, discounts, 2)

	// Product-attached rows come before category-attached rows.
	assert.Equal(t, "Product Deal", discounts[0].Name)
	assert.Equal(t, "Category Deal", discounts[1].Name)
}

func TestDiscountRepository_FindActiveForProduct_None(t *testing.T) {
	testDB, repo, _, product := setupDiscountTest(t)
	defer db.CleanupTestDB(testDB)

	discounts, err := repo.FindActiveForProduct(product.ID, product.CategoryID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, discounts)
}

func TestDiscountRepository_CreateCode_Duplicate(t *testing.T) {
	testDB, repo, _, _ := setupDiscountTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()
	discount := makeDiscount("Promo", 10, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, repo.Create(discount))

	code := &model.DiscountCode{
		Code:       "SAVE10",
		DiscountID: discount.ID,
		ValidFrom:  now.Add(-time.Hour),
		ValidTo:    now.Add(time.Hour),
	}
	require.NoError(t, repo.CreateCode(code))

	err := repo.CreateCode(&model.DiscountCode{
		Code:       "SAVE10",
		DiscountID: discount.ID,
		ValidFrom:  now.Add(-time.Hour),
		ValidTo:    now.Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestDiscountRepository_FindCode(t *testing.T) {
	testDB, repo, _, _ := setupDiscountTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()
	discount := makeDiscount("Promo", 10, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, repo.Create(discount))

	require.NoError(t, repo.CreateCode(&model.DiscountCode{
		Code:       "SAVE10",
		DiscountID: discount.ID,
		ValidFrom:  now.Add(-time.Hour),
		ValidTo:    now.Add(time.Hour),
	}))

	found, err := repo.FindCode("SAVE10")
	require.NoError(t, err)
	assert.Equal(t, discount.ID, found.DiscountID)
	assert.Equal(t, "Promo", found.Discount.Name)

	_, err = repo.FindCode("MISSING")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDiscountRepository_IncrementCodeUsage(t *testing.T) {
	testDB, repo, _, _ := setupDiscountTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()
	discount := makeDiscount("Promo", 10, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, repo.Create(discount))

	code := &model.DiscountCode{
		Code:       "SAVE10",
		DiscountID: discount.ID,
		ValidFrom:  now.Add(-time.Hour),
		ValidTo:    now.Add(time.Hour),
	}
	require.NoError(t, repo.CreateCode(code))

	require.NoError(t, repo.IncrementCodeUsage(nil, code.ID))
	require.NoError(t, repo.IncrementCodeUsage(nil, code.ID))

	found, err := repo.FindCode("SAVE10")
	require.NoError(t, err)
	assert.Equal(t, uint(2), found.UsedCount)
}

func TestDiscountRepository_Delete_RemovesCodes(t *testing.T) {
	testDB, repo, _, product := setupDiscountTest(t)
	defer db.CleanupTestDB(testDB)

	now := time.Now()
	discount := makeDiscount("Promo", 10, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, repo.Create(discount))
	require.NoError(t, repo.AttachProducts(discount, []model.Product{*product}))
	require.NoError(t, repo.CreateCode(&model.DiscountCode{
		Code:       "SAVE10",
		DiscountID: discount.ID,
		ValidFrom:  now.Add(-time.Hour),
		ValidTo:    now.Add(time.Hour),
	}))

	require.NoError(t, repo.Delete(discount.ID))

	_, err := repo.FindByID(discount.ID)
	assert.Error(t, err)

	_, err = repo.FindCode("SAVE10")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
