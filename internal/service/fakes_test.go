package service

import (
	"fmt"
	"sort"
	"time"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/entities"
	"spendly-be/internal/models"

	"github.com/google/uuid"
)

// In-memory repositories for service tests. They mirror the SQL
// repositories' contract: owner-scoped lookups, apperrors sentinels,
// list orderings.

type fakeUserRepo struct {
	users map[string]*entities.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(email, username, passwordHash string) (*entities.User, error) {
	now := time.Now()
	user := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
}

func (r *fakeUserRepo) FindByUsername(username string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
}

func (r *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
}

func (r *fakeUserRepo) Update(user *entities.User) (*entities.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Deactivate(id string) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	u.IsActive = false
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entities.Category // by id
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entities.Category)}
}

func (r *fakeCategoryRepo) Create(category *entities.Category) (*entities.Category, error) {
	c := *category
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.categories[c.ID] = &c
	return &c, nil
}

func (r *fakeCategoryRepo) FindByID(id, userID string) (*entities.Category, error) {
	if c, ok := r.categories[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, fmt.Errorf("category: %w", apperrors.ErrNotFound)
}

func (r *fakeCategoryRepo) FindByName(userID, name string) (*entities.Category, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("category: %w", apperrors.ErrNotFound)
}

func (r *fakeCategoryRepo) ListByUser(userID string, skip, limit int) ([]*entities.Category, error) {
	var out []*entities.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, skip, limit), nil
}

func (r *fakeCategoryRepo) Update(category *entities.Category) (*entities.Category, error) {
	existing, ok := r.categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return nil, fmt.Errorf("category: %w", apperrors.ErrNotFound)
	}
	category.UpdatedAt = time.Now()
	r.categories[category.ID] = category
	return category, nil
}

func (r *fakeCategoryRepo) Delete(id, userID string) error {
	if c, ok := r.categories[id]; ok && c.UserID == userID {
		delete(r.categories, id)
		return nil
	}
	return fmt.Errorf("category: %w", apperrors.ErrNotFound)
}

type fakeExpenseRepo struct {
	expenses map[string]*entities.Expense // by id
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*entities.Expense)}
}

func (r *fakeExpenseRepo) Create(expense *entities.Expense) (*entities.Expense, error) {
	e := *expense
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.expenses[e.ID] = &e
	return &e, nil
}

func (r *fakeExpenseRepo) FindByID(id, userID string) (*entities.Expense, error) {
	if e, ok := r.expenses[id]; ok && e.UserID == userID {
		return e, nil
	}
	return nil, fmt.Errorf("expense: %w", apperrors.ErrNotFound)
}

func (r *fakeExpenseRepo) ListByUser(userID string, filter models.ExpenseFilter, skip, limit int) ([]*entities.Expense, error) {
	all, _ := r.ListAllByUser(userID)
	var out []*entities.Expense
	for _, e := range all {
		if filter.CategoryID != nil && e.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, e)
	}
	return paginate(out, skip, limit), nil
}

func (r *fakeExpenseRepo) ListAllByUser(userID string) ([]*entities.Expense, error) {
	var out []*entities.Expense
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeExpenseRepo) CountByCategory(categoryID, userID string) (int, error) {
	count := 0
	for _, e := range r.expenses {
		if e.UserID == userID && e.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeExpenseRepo) Update(expense *entities.Expense) (*entities.Expense, error) {
	existing, ok := r.expenses[expense.ID]
	if !ok || existing.UserID != expense.UserID {
		return nil, fmt.Errorf("expense: %w", apperrors.ErrNotFound)
	}
	expense.UpdatedAt = time.Now()
	r.expenses[expense.ID] = expense
	return expense, nil
}

func (r *fakeExpenseRepo) Delete(id, userID string) error {
	if e, ok := r.expenses[id]; ok && e.UserID == userID {
		delete(r.expenses, id)
		return nil
	}
	return fmt.Errorf("expense: %w", apperrors.ErrNotFound)
}

type fakeBudgetRepo struct {
	budgets map[string]*entities.Budget // by id
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: make(map[string]*entities.Budget)}
}

func (r *fakeBudgetRepo) Create(budget *entities.Budget) (*entities.Budget, error) {
	b := *budget
	b.ID = uuid.NewString()
	b.IsActive = true
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.budgets[b.ID] = &b
	return &b, nil
}

func (r *fakeBudgetRepo) FindByID(id, userID string) (*entities.Budget, error) {
	if b, ok := r.budgets[id]; ok && b.UserID == userID {
		return b, nil
	}
	return nil, fmt.Errorf("budget: %w", apperrors.ErrNotFound)
}

func (r *fakeBudgetRepo) ListByUser(userID string, activeOnly bool, skip, limit int) ([]*entities.Budget, error) {
	var out []*entities.Budget
	for _, b := range r.budgets {
		if b.UserID != userID {
			continue
		}
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return paginate(out, skip, limit), nil
}

func (r *fakeBudgetRepo) Update(budget *entities.Budget) (*entities.Budget, error) {
	existing, ok := r.budgets[budget.ID]
	if !ok || existing.UserID != budget.UserID {
		return nil, fmt.Errorf("budget: %w", apperrors.ErrNotFound)
	}
	budget.UpdatedAt = time.Now()
	r.budgets[budget.ID] = budget
	return budget, nil
}

func (r *fakeBudgetRepo) Delete(id, userID string) error {
	if b, ok := r.budgets[id]; ok && b.UserID == userID {
		delete(r.budgets, id)
		return nil
	}
	return fmt.Errorf("budget: %w", apperrors.ErrNotFound)
}

func paginate[T any](in []T, skip, limit int) []T {
	if skip >= len(in) {
		return nil
	}
	end := skip + limit
	if end > len(in) {
		end = len(in)
	}
	return in[skip:end]
}
