package entities

import "time"

// Category represents a spending category entity in the database
type Category struct {
	ID          string    `json:"id"` // UUID
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"` // Hex color for UI representation
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
