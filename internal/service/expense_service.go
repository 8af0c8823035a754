package service

import (
	"context"
	"fmt"
	"time"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/cache"
	"spendly-be/internal/entities"
	"spendly-be/internal/models"
	"spendly-be/internal/repository"
)

// ExpenseService defines the interface for expense business logic,
// including the summary views
type ExpenseService interface {
	ListExpenses(userID string, filter models.ExpenseFilter, skip, limit int) ([]*entities.Expense, error)
	GetExpense(id, userID string) (*entities.Expense, error)
	CreateExpense(userID string, req *models.CreateExpenseRequest) (*entities.Expense, error)
	UpdateExpense(id, userID string, req *models.UpdateExpenseRequest) (*entities.Expense, error)
	DeleteExpense(id, userID string) error

	Summary(userID string, start, end *time.Time) (*models.ExpenseSummary, error)
	ByCategory(userID string, start, end *time.Time) ([]models.CategoryExpenseSummary, error)
	Monthly(userID string, months int) ([]models.TimePeriodExpenseSummary, error)
}

type expenseService struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.CategoryRepository
	cache        cache.Cache
	ctx          context.Context
	now          func() time.Time // Injectable for tests of the trailing monthly window
}

// NewExpenseService creates a new expense service. cacheClient may be nil.
func NewExpenseService(expenseRepo repository.ExpenseRepository, categoryRepo repository.CategoryRepository, cacheClient cache.Cache) ExpenseService {
	return &expenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		cache:        cacheClient,
		ctx:          context.Background(),
		now:          time.Now,
	}
}

// ListExpenses retrieves the user's expenses with optional filters,
// newest spending date first
func (s *expenseService) ListExpenses(userID string, filter models.ExpenseFilter, skip, limit int) ([]*entities.Expense, error) {
	return s.expenseRepo.ListByUser(userID, filter, skip, limit)
}

// GetExpense retrieves a single expense owned by the user
func (s *expenseService) GetExpense(id, userID string) (*entities.Expense, error) {
	return s.expenseRepo.FindByID(id, userID)
}

// CreateExpense records an expense after verifying the referenced category
// exists and belongs to the same user. A category owned by someone else is
// reported as missing.
func (s *expenseService) CreateExpense(userID string, req *models.CreateExpenseRequest) (*entities.Expense, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrInvalidInput)
	}

	if _, err := findCategoryCached(s.ctx, s.cache, s.categoryRepo, req.CategoryID, userID); err != nil {
		return nil, err
	}

	return s.expenseRepo.Create(&entities.Expense{
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          req.Date,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		CategoryID:    req.CategoryID,
		UserID:        userID,
	})
}

// UpdateExpense applies the provided changes, re-validating category
// ownership when the category reference changes
func (s *expenseService) UpdateExpense(id, userID string, req *models.UpdateExpenseRequest) (*entities.Expense, error) {
	expense, err := s.expenseRepo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != expense.CategoryID {
		if _, err := findCategoryCached(s.ctx, s.cache, s.categoryRepo, *req.CategoryID, userID); err != nil {
			return nil, err
		}
		expense.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrInvalidInput)
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		expense.Description = req.Description
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Note != nil {
		expense.Note = req.Note
	}
	if req.PaymentMethod != nil {
		expense.PaymentMethod = req.PaymentMethod
	}

	return s.expenseRepo.Update(expense)
}

// DeleteExpense removes an expense owned by the user
func (s *expenseService) DeleteExpense(id, userID string) error {
	return s.expenseRepo.Delete(id, userID)
}

// Summary computes the overall statistics tuple over the user's expenses
// within the optional inclusive date bounds
func (s *expenseService) Summary(userID string, start, end *time.Time) (*models.ExpenseSummary, error) {
	expenses, err := s.expenseRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}

	matched := filterExpensesByDate(expenses, start, end)
	amounts := make([]float64, len(matched))
	for i, e := range matched {
		amounts[i] = e.Amount
	}

	summary := computeStats(amounts)
	return &summary, nil
}

// ByCategory computes per-category statistics over the user's expenses
// within the optional inclusive date bounds, ordered by descending total
func (s *expenseService) ByCategory(userID string, start, end *time.Time) ([]models.CategoryExpenseSummary, error) {
	expenses, err := s.expenseRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}

	matched := filterExpensesByDate(expenses, start, end)
	return groupByCategory(matched, func(categoryID string) string {
		category, err := findCategoryCached(s.ctx, s.cache, s.categoryRepo, categoryID, userID)
		if err != nil {
			return "" // expense's category gone; keep the group, blank the name
		}
		return category.Name
	}), nil
}

// Monthly computes per-calendar-month statistics over a trailing window of
// months*30 days from now. The fixed 30-day multiplier is a deliberate
// approximation of calendar months, kept for compatibility: a months=1
// query can straddle a month boundary.
func (s *expenseService) Monthly(userID string, months int) ([]models.TimePeriodExpenseSummary, error) {
	expenses, err := s.expenseRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}

	end := s.now()
	start := end.Add(-time.Duration(months) * 30 * 24 * time.Hour)
	matched := filterExpensesByDate(expenses, &start, &end)

	return groupByMonth(matched), nil
}
