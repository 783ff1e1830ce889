package models

import "time"

// Expense is a single spending record owned by one user.
type Expense struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"` // signed, unit is implicit
	CreatedAt   time.Time `json:"createdAt"`
}
