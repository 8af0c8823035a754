package service

import (
	"testing"
	"time"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/entities"
	"spendly-be/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryFixture struct {
	svc          CategoryService
	categoryRepo *fakeCategoryRepo
	expenseRepo  *fakeExpenseRepo
}

func newCategoryFixture() *categoryFixture {
	categoryRepo := newFakeCategoryRepo()
	expenseRepo := newFakeExpenseRepo()
	return &categoryFixture{
		svc:          NewCategoryService(categoryRepo, expenseRepo, nil),
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

func TestCreateCategoryDuplicateNameSameOwner(t *testing.T) {
	f := newCategoryFixture()

	_, err := f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Groceries"})
	require.NoError(t, err)

	_, err = f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Groceries"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateCategorySameNameDifferentOwners(t *testing.T) {
	f := newCategoryFixture()

	_, err := f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Groceries"})
	require.NoError(t, err)

	// Name uniqueness is per owner, not global
	_, err = f.svc.CreateCategory("u2", &models.CreateCategoryRequest{Name: "Groceries"})
	assert.NoError(t, err)
}

func TestDeleteCategoryWithExpensesRefused(t *testing.T) {
	f := newCategoryFixture()
	category, err := f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Groceries"})
	require.NoError(t, err)

	_, err = f.expenseRepo.Create(&entities.Expense{
		Amount:     10,
		Date:       time.Now(),
		CategoryID: category.ID,
		UserID:     "u1",
	})
	require.NoError(t, err)

	err = f.svc.DeleteCategory(category.ID, "u1")
	assert.ErrorIs(t, err, apperrors.ErrReferentialViolation)

	// The category must survive the refused delete
	_, err = f.svc.GetCategory(category.ID, "u1")
	assert.NoError(t, err)
}

func TestDeleteCategoryWithoutExpenses(t *testing.T) {
	f := newCategoryFixture()
	category, err := f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Groceries"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteCategory(category.ID, "u1"))

	_, err = f.svc.GetCategory(category.ID, "u1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetCategoryCrossOwnerIsNotFound(t *testing.T) {
	f := newCategoryFixture()
	category, err := f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Groceries"})
	require.NoError(t, err)

	_, err = f.svc.GetCategory(category.ID, "u2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateCategoryRenameToExistingNameRefused(t *testing.T) {
	f := newCategoryFixture()
	_, err := f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Groceries"})
	require.NoError(t, err)
	travel, err := f.svc.CreateCategory("u1", &models.CreateCategoryRequest{Name: "Travel"})
	require.NoError(t, err)

	name := "Groceries"
	_, err = f.svc.UpdateCategory(travel.ID, "u1", &models.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
