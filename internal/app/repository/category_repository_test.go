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

func setupCategoryTest(t *testing.T) (*gorm.DB, CategoryRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return testDB, NewCategoryRepository(testDB)
}

func TestCategoryRepository_Create(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Electronics"}
	err := repo.Create(category)
	assert.NoError(t, err)
	assert.NotZero(t, category.ID)
}

func TestCategoryRepository_FindRoots(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root := &model.Category{Name: "Electronics"}
	require.NoError(t, repo.Create(root))
	child := &model.Category{Name: "Audio", ParentID: &root.ID}
	require.NoError(t, repo.Create(child))

	roots, err := repo.FindRoots()
	require.NoError(t, err)
	assert.Len(t, roots, 1)
	assert.Equal(t, "Electronics", roots[0].Name)
}

func TestCategoryRepository_FindChildren(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root := &model.Category{Name: "Electronics"}
	require.NoError(t, repo.Create(root))
	require.NoError(t, repo.Create(&model.Category{Name: "Audio", ParentID: &root.ID}))
	require.NoError(t, repo.Create(&model.Category{Name: "Video", ParentID: &root.ID}))

	children, err := repo.FindChildren(root.ID)
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestCategoryRepository_Delete_DetachesChildren(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root := &model.Category{Name: "Electronics"}
	require.NoError(t, repo.Create(root))
	child1 := &model.Category{Name: "Audio", ParentID: &root.ID}
	child2 := &model.Category{Name: "Video", ParentID: &root.ID}
	require.NoError(t, repo.Create(child1))
	require.NoError(t, repo.Create(child2))

	err := repo.Delete(root.ID)
	require.NoError(t, err)

	// Children survive as new roots.
	found1, err := repo.FindByID(child1.ID)
	require.NoError(t, err)
	assert.Nil(t, found1.ParentID)

	found2, err := repo.FindByID(child2.ID)
	require.NoError(t, err)
	assert.Nil(t, found2.ParentID)

	_, err = repo.FindByID(root.ID)
	assert.Error(t, err)
}

func TestCategoryRepository_Delete_RemovesProducts(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Electronics"}
	require.NoError(t, repo.Create(category))

	product := &model.Product{
		Name:       "Headphones",
		Slug:       "headphones",
		CategoryID: category.ID,
		Kind:       model.KindProduct,
		Price:      decimal.NewFromInt(99),
		Stock:      10,
	}
	require.NoError(t, testDB.Create(product).Error)

	require.NoError(t, repo.Delete(category.ID))

	var count int64
	testDB.Model(&model.Product{}).Where("id = ?", product.ID).Count(&count)
	assert.Zero(t, count)
}
