package entities

import "time"

// Expense represents a single spending record in the database
type Expense struct {
	ID            string    `json:"id"` // UUID
	Amount        float64   `json:"amount"`
	Description   *string   `json:"description,omitempty"`
	Date          time.Time `json:"date"` // When the money was spent, not when the record was created
	Note          *string   `json:"note,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"` // e.g. "cash", "credit card"
	CategoryID    string    `json:"category_id"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
