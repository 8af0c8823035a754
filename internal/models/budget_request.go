package models

import "time"

// CreateBudgetRequest represents the request body for creating a budget
type CreateBudgetRequest struct {
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Name        string    `json:"name" binding:"required,max=100"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	CategoryID  *string   `json:"category_id,omitempty" binding:"omitempty,uuid"` // Omit for an overall budget
}

// UpdateBudgetRequest represents the request body for updating a budget.
// Only the provided fields are changed.
type UpdateBudgetRequest struct {
	Amount      *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Name        *string    `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty" binding:"omitempty,uuid"`
}
