package repository

import (
	"testing"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLikeTest(t *testing.T) (*gorm.DB, LikeRepository, *model.Customer, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewLikeRepository(testDB)

	customer := &model.Customer{UserID: 1}
	require.NoError(t, testDB.Create(customer).Error)

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

	return testDB, repo, customer, product
}

func TestLikeRepository_Create(t *testing.T) {
	testDB, repo, customer, product := setupLikeTest(t)
	defer db.CleanupTestDB(testDB)

	like := &model.ProductLike{CustomerID: customer.ID, ProductID: product.ID}
	err := repo.Create(like)
	assert.NoError(t, err)
	assert.NotZero(t, like.ID)
}

func TestLikeRepository_Create_Duplicate(t *testing.T) {
	testDB, repo, customer, product := setupLikeTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.ProductLike{CustomerID: customer.ID, ProductID: product.ID}))

	// Second like for the same (customer, product) hits the unique index.
	err := repo.Create(&model.ProductLike{CustomerID: customer.ID, ProductID: product.ID})
	assert.Error(t, err)

	count, err := repo.CountByProductID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeRepository_Exists(t *testing.T) {
	testDB, repo, customer, product := setupLikeTest(t)
	defer db.CleanupTestDB(testDB)

	exists, err := repo.Exists(customer.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(&model.ProductLike{CustomerID: customer.ID, ProductID: product.ID}))

	exists, err = repo.Exists(customer.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLikeRepository_Delete(t *testing.T) {
	testDB, repo, customer, product := setupLikeTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.ProductLike{CustomerID: customer.ID, ProductID: product.ID}))

	err := repo.Delete(customer.ID, product.ID)
	assert.NoError(t, err)

	exists, _ := repo.Exists(customer.ID, product.ID)
	assert.False(t, exists)

	// Removing a like again is reported, per the missing row.
	err = repo.Delete(customer.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLikeRepository_LikeAgainAfterDelete(t *testing.T) {
	testDB, repo, customer, product := setupLikeTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.ProductLike{CustomerID: customer.ID, ProductID: product.ID}))
	require.NoError(t, repo.Delete(customer.ID, product.ID))

	// The pair is free again once the old like is gone.
	err := repo.Create(&model.ProductLike{CustomerID: customer.ID, ProductID: product.ID})
	assert.NoError(t, err)
}

func TestLikeRepository_FindByCustomerID(t *testing.T) {
	testDB, repo, customer, product := setupLikeTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.ProductLike{CustomerID: customer.ID, ProductID: product.ID}))

	likes, err := repo.FindByCustomerID(customer.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, product.ID, likes[0].Product.ID)
}
