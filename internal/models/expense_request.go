package models

import "time"

// CreateExpenseRequest represents the request body for recording an expense
type CreateExpenseRequest struct {
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Description   *string   `json:"description,omitempty"`
	Date          time.Time `json:"date" binding:"required"`
	Note          *string   `json:"note,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	CategoryID    string    `json:"category_id" binding:"required,uuid"`
}

// UpdateExpenseRequest represents the request body for updating an expense.
// Only the provided fields are changed.
type UpdateExpenseRequest struct {
	Amount        *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Description   *string    `json:"description,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Note          *string    `json:"note,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	CategoryID    *string    `json:"category_id,omitempty" binding:"omitempty,uuid"`
}

// ExpenseFilter holds the optional query filters for listing expenses
type ExpenseFilter struct {
	CategoryID *string
	StartDate  *time.Time
	EndDate    *time.Time
}
