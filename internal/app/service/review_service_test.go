package service

import (
	"testing"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*gorm.DB, ReviewService, *model.Customer, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewReviewService(
		repository.NewReviewRepository(testDB),
		repository.NewProductRepository(testDB),
	)

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

	return testDB, svc, customer, product
}

func TestReviewService_CreateReview(t *testing.T) {
	testDB, svc, customer, product := setupReviewServiceTest(t)
	defer db.CleanupTestDB(testDB)

	review, err := svc.CreateReview(customer.ID, product.ID, 4, "Good value.")
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_CreateReview_RatingBounds(t *testing.T) {
	testDB, svc, customer, product := setupReviewServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.CreateReview(customer.ID, product.ID, 0, "")
	assert.ErrorIs(t, err, ErrRatingOutOfRange)

	_, err = svc.CreateReview(customer.ID, product.ID, 6, "")
	assert.ErrorIs(t, err, ErrRatingOutOfRange)

	// Boundary ratings are accepted.
	_, err = svc.CreateReview(customer.ID, product.ID, 1, "")
	assert.NoError(t, err)
	_, err = svc.CreateReview(customer.ID, product.ID, 5, "")
	assert.NoError(t, err)
}

func TestReviewService_CreateReview_UnknownProduct(t *testing.T) {
	testDB, svc, customer, _ := setupReviewServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.CreateReview(customer.ID, 9999, 3, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReviewService_GetProductReviews(t *testing.T) {
	testDB, svc, customer, product := setupReviewServiceTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateReview(customer.ID, product.ID, 5, "")
		require.NoError(t, err)
	}

	reviews, err := svc.GetProductReviews(product.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
}
