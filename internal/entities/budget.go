package entities

import "time"

// Budget represents a spending cap over a date range in the database
type Budget struct {
	ID          string    `json:"id"` // UUID
	Amount      float64   `json:"amount"` // The cap
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CategoryID  *string   `json:"category_id,omitempty"` // Pointer allows nil (overall budget across all categories)
	IsActive    bool      `json:"is_active"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
