package service

import (
	"context"
	"fmt"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/cache"
	"spendly-be/internal/entities"
	"spendly-be/internal/models"
	"spendly-be/internal/repository"
)

// BudgetService defines the interface for budget business logic,
// including the progress views
type BudgetService interface {
	ListBudgets(userID string, activeOnly bool, skip, limit int) ([]*entities.Budget, error)
	GetBudget(id, userID string) (*entities.Budget, error)
	CreateBudget(userID string, req *models.CreateBudgetRequest) (*entities.Budget, error)
	UpdateBudget(id, userID string, req *models.UpdateBudgetRequest) (*entities.Budget, error)
	DeleteBudget(id, userID string) error

	GetProgress(id, userID string) (*models.BudgetProgress, error)
	GetAllProgress(userID string, activeOnly bool) ([]*models.BudgetProgress, error)
}

type budgetService struct {
	budgetRepo   repository.BudgetRepository
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.CategoryRepository
	cache        cache.Cache
	ctx          context.Context
}

// NewBudgetService creates a new budget service. cacheClient may be nil.
func NewBudgetService(budgetRepo repository.BudgetRepository, expenseRepo repository.ExpenseRepository, categoryRepo repository.CategoryRepository, cacheClient cache.Cache) BudgetService {
	return &budgetService{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		cache:        cacheClient,
		ctx:          context.Background(),
	}
}

// ListBudgets retrieves the user's budgets, newest window first
func (s *budgetService) ListBudgets(userID string, activeOnly bool, skip, limit int) ([]*entities.Budget, error) {
	return s.budgetRepo.ListByUser(userID, activeOnly, skip, limit)
}

// GetBudget retrieves a single budget owned by the user
func (s *budgetService) GetBudget(id, userID string) (*entities.Budget, error) {
	return s.budgetRepo.FindByID(id, userID)
}

// CreateBudget creates a budget after validating the date window and, for a
// category-scoped budget, that the category belongs to the user
func (s *budgetService) CreateBudget(userID string, req *models.CreateBudgetRequest) (*entities.Budget, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrInvalidInput)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("end date must be after start date: %w", apperrors.ErrInvalidInput)
	}

	if req.CategoryID != nil {
		if _, err := findCategoryCached(s.ctx, s.cache, s.categoryRepo, *req.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	return s.budgetRepo.Create(&entities.Budget{
		Amount:      req.Amount,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CategoryID:  req.CategoryID,
		UserID:      userID,
	})
}

// UpdateBudget applies the provided changes, re-validating the date window
// and category ownership
func (s *budgetService) UpdateBudget(id, userID string, req *models.UpdateBudgetRequest) (*entities.Budget, error) {
	budget, err := s.budgetRepo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && (budget.CategoryID == nil || *req.CategoryID != *budget.CategoryID) {
		if _, err := findCategoryCached(s.ctx, s.cache, s.categoryRepo, *req.CategoryID, userID); err != nil {
			return nil, err
		}
		budget.CategoryID = req.CategoryID
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrInvalidInput)
		}
		budget.Amount = *req.Amount
	}
	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Description != nil {
		budget.Description = req.Description
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
	}

	if !budget.EndDate.After(budget.StartDate) {
		return nil, fmt.Errorf("end date must be after start date: %w", apperrors.ErrInvalidInput)
	}

	return s.budgetRepo.Update(budget)
}

// DeleteBudget removes a budget owned by the user
func (s *budgetService) DeleteBudget(id, userID string) error {
	return s.budgetRepo.Delete(id, userID)
}

// GetProgress recomputes the spend-vs-cap view for one budget from the
// user's current expenses
func (s *budgetService) GetProgress(id, userID string) (*models.BudgetProgress, error) {
	budget, err := s.budgetRepo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}

	return computeProgress(budget, expenses, s.resolveCategoryName(budget, userID)), nil
}

// GetAllProgress recomputes progress for every budget of the user
// (optionally only active ones), in the list order: newest window first.
// A budget whose category has been deleted still reports progress with a
// null category name; one bad item never aborts the batch.
func (s *budgetService) GetAllProgress(userID string, activeOnly bool) ([]*models.BudgetProgress, error) {
	budgets, err := s.budgetRepo.ListByUser(userID, activeOnly, 0, allBudgetsLimit)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.BudgetProgress, 0, len(budgets))
	for _, budget := range budgets {
		result = append(result, computeProgress(budget, expenses, s.resolveCategoryName(budget, userID)))
	}
	return result, nil
}

// allBudgetsLimit bounds the progress batch; nobody keeps this many budgets
const allBudgetsLimit = 1000

// resolveCategoryName looks up the display name for a category-scoped
// budget. A missing category yields nil, never an error - the budget can
// outlive its category.
func (s *budgetService) resolveCategoryName(budget *entities.Budget, userID string) *string {
	if budget.CategoryID == nil {
		return nil
	}
	category, err := findCategoryCached(s.ctx, s.cache, s.categoryRepo, *budget.CategoryID, userID)
	if err != nil {
		return nil
	}
	return &category.Name
}
