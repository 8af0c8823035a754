package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/entities"
	"spendly-be/internal/models"
)

// ExpenseRepository defines the interface for expense database operations
type ExpenseRepository interface {
	Create(expense *entities.Expense) (*entities.Expense, error)
	FindByID(id, userID string) (*entities.Expense, error)
	ListByUser(userID string, filter models.ExpenseFilter, skip, limit int) ([]*entities.Expense, error)
	ListAllByUser(userID string) ([]*entities.Expense, error)
	CountByCategory(categoryID, userID string) (int, error)
	Update(expense *entities.Expense) (*entities.Expense, error)
	Delete(id, userID string) error
}

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = "id, amount, description, date, note, payment_method, category_id, user_id, created_at, updated_at"

func scanExpense(row *sql.Row) (*entities.Expense, error) {
	var e entities.Expense
	err := row.Scan(
		&e.ID,
		&e.Amount,
		&e.Description,
		&e.Date,
		&e.Note,
		&e.PaymentMethod,
		&e.CategoryID,
		&e.UserID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new expense into the database
func (r *expenseRepository) Create(expense *entities.Expense) (*entities.Expense, error) {
	query := `
		INSERT INTO expenses (amount, description, date, note, payment_method, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + expenseColumns

	created, err := scanExpense(r.db.QueryRow(query,
		expense.Amount,
		expense.Description,
		expense.Date.UTC(),
		expense.Note,
		expense.PaymentMethod,
		expense.CategoryID,
		expense.UserID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

// FindByID finds an expense by ID for a specific user
func (r *expenseRepository) FindByID(id, userID string) (*entities.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`

	expense, err := scanExpense(r.db.QueryRow(query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	return expense, nil
}

// ListByUser retrieves expenses for a user with optional filters and
// pagination, newest spending date first.
func (r *expenseRepository) ListByUser(userID string, filter models.ExpenseFilter, skip, limit int) ([]*entities.Expense, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`)
	args := []interface{}{userID}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		sb.WriteString(` AND category_id = $` + strconv.Itoa(len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, filter.StartDate.UTC())
		sb.WriteString(` AND date >= $` + strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, filter.EndDate.UTC())
		sb.WriteString(` AND date <= $` + strconv.Itoa(len(args)))
	}

	args = append(args, skip)
	sb.WriteString(` ORDER BY date DESC OFFSET $` + strconv.Itoa(len(args)))
	args = append(args, limit)
	sb.WriteString(` LIMIT $` + strconv.Itoa(len(args)))

	return r.queryExpenses(sb.String(), args...)
}

// ListAllByUser retrieves the full expense set for a user. The aggregation
// core applies its own date/category filtering over this set, so no filters
// are pushed down here.
func (r *expenseRepository) ListAllByUser(userID string) ([]*entities.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY date DESC`
	return r.queryExpenses(query, userID)
}

func (r *expenseRepository) queryExpenses(query string, args ...interface{}) ([]*entities.Expense, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*entities.Expense
	for rows.Next() {
		var e entities.Expense
		err := rows.Scan(
			&e.ID,
			&e.Amount,
			&e.Description,
			&e.Date,
			&e.Note,
			&e.PaymentMethod,
			&e.CategoryID,
			&e.UserID,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// CountByCategory counts the expenses referencing a category
func (r *expenseRepository) CountByCategory(categoryID, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM expenses WHERE category_id = $1 AND user_id = $2
	`, categoryID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// Update persists the mutable fields of an expense (only if the user owns it)
func (r *expenseRepository) Update(expense *entities.Expense) (*entities.Expense, error) {
	query := `
		UPDATE expenses
		SET amount = $1, description = $2, date = $3, note = $4, payment_method = $5, category_id = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING ` + expenseColumns

	updated, err := scanExpense(r.db.QueryRow(query,
		expense.Amount,
		expense.Description,
		expense.Date.UTC(),
		expense.Note,
		expense.PaymentMethod,
		expense.CategoryID,
		expense.ID,
		expense.UserID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return updated, nil
}

// Delete removes an expense (only if the user owns it)
func (r *expenseRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense: %w", apperrors.ErrNotFound)
	}
	return nil
}
