package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/entities"
)

// BudgetRepository defines the interface for budget database operations
type BudgetRepository interface {
	Create(budget *entities.Budget) (*entities.Budget, error)
	FindByID(id, userID string) (*entities.Budget, error)
	ListByUser(userID string, activeOnly bool, skip, limit int) ([]*entities.Budget, error)
	Update(budget *entities.Budget) (*entities.Budget, error)
	Delete(id, userID string) error
}

type budgetRepository struct {
	db *sql.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *sql.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

const budgetColumns = "id, amount, name, description, start_date, end_date, category_id, is_active, user_id, created_at, updated_at"

func scanBudget(row *sql.Row) (*entities.Budget, error) {
	var b entities.Budget
	err := row.Scan(
		&b.ID,
		&b.Amount,
		&b.Name,
		&b.Description,
		&b.StartDate,
		&b.EndDate,
		&b.CategoryID,
		&b.IsActive,
		&b.UserID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new budget into the database
func (r *budgetRepository) Create(budget *entities.Budget) (*entities.Budget, error) {
	query := `
		INSERT INTO budgets (amount, name, description, start_date, end_date, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + budgetColumns

	created, err := scanBudget(r.db.QueryRow(query,
		budget.Amount,
		budget.Name,
		budget.Description,
		budget.StartDate.UTC(),
		budget.EndDate.UTC(),
		budget.CategoryID,
		budget.UserID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return created, nil
}

// FindByID finds a budget by ID for a specific user
func (r *budgetRepository) FindByID(id, userID string) (*entities.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`

	budget, err := scanBudget(r.db.QueryRow(query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	return budget, nil
}

// ListByUser retrieves budgets for a user, newest window first
func (r *budgetRepository) ListByUser(userID string, activeOnly bool, skip, limit int) ([]*entities.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY start_date DESC OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*entities.Budget
	for rows.Next() {
		var b entities.Budget
		err := rows.Scan(
			&b.ID,
			&b.Amount,
			&b.Name,
			&b.Description,
			&b.StartDate,
			&b.EndDate,
			&b.CategoryID,
			&b.IsActive,
			&b.UserID,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// Update persists the mutable fields of a budget (only if the user owns it)
func (r *budgetRepository) Update(budget *entities.Budget) (*entities.Budget, error) {
	query := `
		UPDATE budgets
		SET amount = $1, name = $2, description = $3, start_date = $4, end_date = $5, category_id = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + budgetColumns

	updated, err := scanBudget(r.db.QueryRow(query,
		budget.Amount,
		budget.Name,
		budget.Description,
		budget.StartDate.UTC(),
		budget.EndDate.UTC(),
		budget.CategoryID,
		budget.IsActive,
		budget.ID,
		budget.UserID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return updated, nil
}

// Delete removes a budget (only if the user owns it)
func (r *budgetRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("budget: %w", apperrors.ErrNotFound)
	}
	return nil
}
