package service

import "expense_tracker/internal/models"

// Identity is the caller resolved from a verified session token.
type Identity struct {
	UserID string
	Email  string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult carries the issued token and the public user view.
type LoginResult struct {
	Token string
	User  models.UserSummary
}

// ExpenseInput holds the mutable fields of an expense.
type ExpenseInput struct {
	Description string
	Amount      float64 // any sign, zero allowed
}
