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

func setupCartServiceTest(t *testing.T) (*gorm.DB, CartService, *model.Customer, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewCartService(
		repository.NewCartRepository(testDB),
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

func TestCartService_AddToCart(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, svc.AddToCart(customer.ID, product.ID, 2))

	cart, err := svc.GetCart(customer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_AddToCart_MergesQuantity(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, svc.AddToCart(customer.ID, product.ID, 2))
	require.NoError(t, svc.AddToCart(customer.ID, product.ID, 3))

	cart, err := svc.GetCart(customer.ID)
	require.NoError(t, err)
	// Still one row; quantities merged.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddToCart_InsufficientStock(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	err := svc.AddToCart(customer.ID, product.ID, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The merged total is checked against stock, not the increment alone.
	require.NoError(t, svc.AddToCart(customer.ID, product.ID, 8))
	err = svc.AddToCart(customer.ID, product.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	assert.ErrorIs(t, svc.AddToCart(customer.ID, product.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, svc.AddToCart(customer.ID, product.ID, -1), ErrInvalidQuantity)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	testDB, svc, customer, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	err := svc.AddToCart(customer.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, svc.AddToCart(customer.ID, product.ID, 2))
	require.NoError(t, svc.UpdateQuantity(customer.ID, product.ID, 7))

	cart, err := svc.GetCart(customer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_MissingItem(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	err := svc.UpdateQuantity(customer.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, svc.AddToCart(customer.ID, product.ID, 2))
	require.NoError(t, svc.RemoveFromCart(customer.ID, product.ID))

	cart, err := svc.GetCart(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_ClearCart(t *testing.T) {
	testDB, svc, customer, product := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.Product{
		Name:       "Cable",
		Slug:       "cable",
		CategoryID: product.CategoryID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(9),
		Stock:      100,
	}
	require.NoError(t, testDB.Create(other).Error)

	require.NoError(t, svc.AddToCart(customer.ID, product.ID, 2))
	require.NoError(t, svc.AddToCart(customer.ID, other.ID, 1))
	require.NoError(t, svc.ClearCart(customer.ID))

	cart, err := svc.GetCart(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
