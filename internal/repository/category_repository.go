package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/entities"
)

// CategoryRepository defines the interface for category database operations.
// Every query is scoped to the owning user; records owned by someone else
// behave exactly like records that do not exist.
type CategoryRepository interface {
	Create(category *entities.Category) (*entities.Category, error)
	FindByID(id, userID string) (*entities.Category, error)
	FindByName(userID, name string) (*entities.Category, error)
	ListByUser(userID string, skip, limit int) ([]*entities.Category, error)
	Update(category *entities.Category) (*entities.Category, error)
	Delete(id, userID string) error
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = "id, name, description, color, user_id, created_at, updated_at"

func scanCategory(row *sql.Row) (*entities.Category, error) {
	var c entities.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Color,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category into the database
func (r *categoryRepository) Create(category *entities.Category) (*entities.Category, error) {
	query := `
		INSERT INTO categories (name, description, color, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns

	created, err := scanCategory(r.db.QueryRow(query, category.Name, category.Description, category.Color, category.UserID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

// FindByID finds a category by ID for a specific user
func (r *categoryRepository) FindByID(id, userID string) (*entities.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`

	category, err := scanCategory(r.db.QueryRow(query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// FindByName finds a category by its per-owner unique name
func (r *categoryRepository) FindByName(userID, name string) (*entities.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND name = $2`

	category, err := scanCategory(r.db.QueryRow(query, userID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

// ListByUser retrieves categories for a user with pagination
func (r *categoryRepository) ListByUser(userID string, skip, limit int) ([]*entities.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at ASC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		var c entities.Category
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.Color,
			&c.UserID,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// Update persists the mutable fields of a category (only if the user owns it)
func (r *categoryRepository) Update(category *entities.Category) (*entities.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, description = $2, color = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + categoryColumns

	updated, err := scanCategory(r.db.QueryRow(query, category.Name, category.Description, category.Color, category.ID, category.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category (only if the user owns it). The FK from expenses
// is RESTRICT, so a delete racing a new expense insert fails here rather than
// orphaning the expense.
func (r *categoryRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("category has expenses: %w", apperrors.ErrReferentialViolation)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category: %w", apperrors.ErrNotFound)
	}
	return nil
}
