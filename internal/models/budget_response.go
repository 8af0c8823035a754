package models

import "time"

// BudgetProgress represents the derived spend-vs-cap view for one budget.
// It is computed fresh on every call and never persisted.
type BudgetProgress struct {
	BudgetID        string    `json:"budget_id"`
	BudgetName      string    `json:"budget_name"`
	BudgetAmount    float64   `json:"budget_amount"`
	SpentAmount     float64   `json:"spent_amount"`
	RemainingAmount float64   `json:"remaining_amount"` // Negative when overspent
	PercentageUsed  float64   `json:"percentage_used"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	CategoryID      *string   `json:"category_id,omitempty"`
	CategoryName    *string   `json:"category_name,omitempty"`
	IsExceeded      bool      `json:"is_exceeded"`
}
