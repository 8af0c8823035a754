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

type expenseFixture struct {
	svc          *expenseService
	expenseRepo  *fakeExpenseRepo
	categoryRepo *fakeCategoryRepo
}

func newExpenseFixture() *expenseFixture {
	expenseRepo := newFakeExpenseRepo()
	categoryRepo := newFakeCategoryRepo()
	return &expenseFixture{
		svc:          NewExpenseService(expenseRepo, categoryRepo, nil).(*expenseService),
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

func (f *expenseFixture) addCategory(t *testing.T, userID, name string) *entities.Category {
	t.Helper()
	category, err := f.categoryRepo.Create(&entities.Category{Name: name, UserID: userID})
	require.NoError(t, err)
	return category
}

func TestCreateExpenseRejectsForeignCategory(t *testing.T) {
	f := newExpenseFixture()
	other := f.addCategory(t, "someone-else", "Groceries")

	_, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
		Amount:     10,
		Date:       date(2024, time.January, 5),
		CategoryID: other.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	f := newExpenseFixture()
	groceries := f.addCategory(t, "u1", "Groceries")

	_, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
		Amount:     0,
		Date:       date(2024, time.January, 5),
		CategoryID: groceries.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateExpenseRevalidatesCategoryOwnership(t *testing.T) {
	f := newExpenseFixture()
	groceries := f.addCategory(t, "u1", "Groceries")
	foreign := f.addCategory(t, "someone-else", "Travel")

	expense, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
		Amount:     10,
		Date:       date(2024, time.January, 5),
		CategoryID: groceries.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateExpense(expense.ID, "u1", &models.UpdateExpenseRequest{
		CategoryID: &foreign.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSummaryEmpty(t *testing.T) {
	f := newExpenseFixture()

	summary, err := f.svc.Summary("u1", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.Total)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, 0.0, summary.Average)
	assert.Nil(t, summary.Min)
	assert.Nil(t, summary.Max)
}

func TestSummaryWithDateBounds(t *testing.T) {
	f := newExpenseFixture()
	groceries := f.addCategory(t, "u1", "Groceries")

	for _, e := range []struct {
		amount float64
		on     time.Time
	}{
		{10, date(2024, time.January, 5)},
		{30, date(2024, time.January, 20)},
		{99, date(2024, time.March, 1)}, // out of range
	} {
		_, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
			Amount:     e.amount,
			Date:       e.on,
			CategoryID: groceries.ID,
		})
		require.NoError(t, err)
	}

	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)
	summary, err := f.svc.Summary("u1", &start, &end)
	require.NoError(t, err)

	assert.Equal(t, 40.0, summary.Total)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 20.0, summary.Average, 1e-9)
	require.NotNil(t, summary.Min)
	assert.Equal(t, 10.0, *summary.Min)
	require.NotNil(t, summary.Max)
	assert.Equal(t, 30.0, *summary.Max)
}

func TestByCategoryResolvesNamesAndOrdersByTotal(t *testing.T) {
	f := newExpenseFixture()
	groceries := f.addCategory(t, "u1", "Groceries")
	travel := f.addCategory(t, "u1", "Travel")
	f.addCategory(t, "u1", "Unused") // no expenses: must be omitted

	for _, e := range []struct {
		amount     float64
		categoryID string
	}{
		{50, groceries.ID},
		{30, groceries.ID},
		{200, travel.ID},
	} {
		_, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
			Amount:     e.amount,
			Date:       date(2024, time.January, 10),
			CategoryID: e.categoryID,
		})
		require.NoError(t, err)
	}

	summaries, err := f.svc.ByCategory("u1", nil, nil)
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Travel", summaries[0].CategoryName)
	assert.Equal(t, 200.0, summaries[0].Total)
	assert.Equal(t, "Groceries", summaries[1].CategoryName)
	assert.Equal(t, 80.0, summaries[1].Total)
	assert.Equal(t, 2, summaries[1].Count)
	assert.InDelta(t, 40.0, summaries[1].Average, 1e-9)
}

func TestMonthlyTrailingWindow(t *testing.T) {
	f := newExpenseFixture()
	groceries := f.addCategory(t, "u1", "Groceries")

	for _, e := range []struct {
		amount float64
		on     time.Time
	}{
		{10, date(2024, time.March, 15)},
		{20, date(2024, time.April, 2)},
		{99, date(2023, time.June, 1)}, // far outside the window
	} {
		_, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
			Amount:     e.amount,
			Date:       e.on,
			CategoryID: groceries.ID,
		})
		require.NoError(t, err)
	}

	// Pin "now": months=2 covers the trailing 60 days from April 10th
	f.svc.now = func() time.Time { return date(2024, time.April, 10) }

	summaries, err := f.svc.Monthly("u1", 2)
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "2024-03", summaries[0].Period)
	assert.Equal(t, 1, summaries[0].Count)
	assert.Equal(t, 10.0, summaries[0].Total)
	assert.Equal(t, "2024-04", summaries[1].Period)
	assert.Equal(t, 1, summaries[1].Count)
	assert.Equal(t, 20.0, summaries[1].Total)
}

func TestMonthlyWindowIsThirtyDayApproximation(t *testing.T) {
	f := newExpenseFixture()
	groceries := f.addCategory(t, "u1", "Groceries")

	// 35 days before "now": inside a calendar month reading of months=1,
	// but outside the fixed 30-day window
	_, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
		Amount:     10,
		Date:       date(2024, time.March, 6),
		CategoryID: groceries.ID,
	})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return date(2024, time.April, 10) }

	summaries, err := f.svc.Monthly("u1", 1)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestListExpensesScopedToOwner(t *testing.T) {
	f := newExpenseFixture()
	mine := f.addCategory(t, "u1", "Groceries")
	theirs := f.addCategory(t, "u2", "Groceries")

	_, err := f.svc.CreateExpense("u1", &models.CreateExpenseRequest{
		Amount: 10, Date: date(2024, time.January, 5), CategoryID: mine.ID,
	})
	require.NoError(t, err)
	_, err = f.svc.CreateExpense("u2", &models.CreateExpenseRequest{
		Amount: 20, Date: date(2024, time.January, 6), CategoryID: theirs.ID,
	})
	require.NoError(t, err)

	expenses, err := f.svc.ListExpenses("u1", models.ExpenseFilter{}, 0, 100)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 10.0, expenses[0].Amount)
}
