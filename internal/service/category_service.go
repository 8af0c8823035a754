package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/cache"
	"spendly-be/internal/entities"
	"spendly-be/internal/models"
	"spendly-be/internal/repository"
)

const categoryCacheTTL = 1 * time.Hour

// CategoryService defines the interface for category business logic
type CategoryService interface {
	ListCategories(userID string, skip, limit int) ([]*entities.Category, error)
	GetCategory(id, userID string) (*entities.Category, error)
	CreateCategory(userID string, req *models.CreateCategoryRequest) (*entities.Category, error)
	UpdateCategory(id, userID string, req *models.UpdateCategoryRequest) (*entities.Category, error)
	DeleteCategory(id, userID string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	expenseRepo  repository.ExpenseRepository
	cache        cache.Cache
	ctx          context.Context
}

// NewCategoryService creates a new category service. cacheClient may be nil;
// the service then reads straight from the repository.
func NewCategoryService(categoryRepo repository.CategoryRepository, expenseRepo repository.ExpenseRepository, cacheClient cache.Cache) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		cache:        cacheClient,
		ctx:          context.Background(),
	}
}

// findCategoryCached is the single cached point-lookup in the service layer.
// Derived views are never cached, but the category-by-id lookup backing
// ownership checks and progress name resolution is hot and safe to cache:
// every mutation of a category deletes exactly this key.
func findCategoryCached(ctx context.Context, c cache.Cache, repo repository.CategoryRepository, id, userID string) (*entities.Category, error) {
	if c != nil {
		var cached entities.Category
		if err := c.GetJSON(ctx, cache.CategoryKey(userID, id), &cached); err == nil {
			return &cached, nil
		}
	}

	category, err := repo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.SetJSON(ctx, cache.CategoryKey(userID, id), category, categoryCacheTTL); err != nil {
			log.Printf("Warning: failed to cache category %s: %v", id, err)
		}
	}
	return category, nil
}

func (s *categoryService) invalidate(id, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(s.ctx, cache.CategoryKey(userID, id)); err != nil {
		log.Printf("Warning: failed to invalidate category cache for %s: %v", id, err)
	}
}

// ListCategories retrieves the user's categories with pagination
func (s *categoryService) ListCategories(userID string, skip, limit int) ([]*entities.Category, error) {
	return s.categoryRepo.ListByUser(userID, skip, limit)
}

// GetCategory retrieves a single category owned by the user
func (s *categoryService) GetCategory(id, userID string) (*entities.Category, error) {
	return findCategoryCached(s.ctx, s.cache, s.categoryRepo, id, userID)
}

// CreateCategory creates a new category, enforcing per-owner name uniqueness
func (s *categoryService) CreateCategory(userID string, req *models.CreateCategoryRequest) (*entities.Category, error) {
	if _, err := s.categoryRepo.FindByName(userID, req.Name); err == nil {
		return nil, fmt.Errorf("category with this name already exists: %w", apperrors.ErrConflict)
	}

	return s.categoryRepo.Create(&entities.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		UserID:      userID,
	})
}

// UpdateCategory applies the provided changes to a category owned by the user
func (s *categoryService) UpdateCategory(id, userID string, req *models.UpdateCategoryRequest) (*entities.Category, error) {
	category, err := s.categoryRepo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		if _, err := s.categoryRepo.FindByName(userID, *req.Name); err == nil {
			return nil, fmt.Errorf("category with this name already exists: %w", apperrors.ErrConflict)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.Color != nil {
		category.Color = req.Color
	}

	updated, err := s.categoryRepo.Update(category)
	if err != nil {
		return nil, err
	}

	s.invalidate(id, userID)
	return updated, nil
}

// DeleteCategory removes a category. Deletion is refused while any expense
// references the category. Budgets referencing it are left alone: their
// progress keeps working and reports a null category name.
func (s *categoryService) DeleteCategory(id, userID string) error {
	if _, err := s.categoryRepo.FindByID(id, userID); err != nil {
		return err
	}

	count, err := s.expenseRepo.CountByCategory(id, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cannot delete category that has expenses: %w", apperrors.ErrReferentialViolation)
	}

	if err := s.categoryRepo.Delete(id, userID); err != nil {
		return err
	}

	s.invalidate(id, userID)
	return nil
}
