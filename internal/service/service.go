package service

import (
	"context"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, email, password string) (LoginResult, error)
	ParseToken(accessToken string) (Identity, error)
}

// Expenses exposes owner-scoped expense management. callerID always comes
// from a verified token, never from the request body.
type Expenses interface {
	Create(ctx context.Context, callerID string, in ExpenseInput) (models.Expense, error)
	List(ctx context.Context, callerID string) ([]models.Expense, error)
	Get(ctx context.Context, callerID, id string) (models.Expense, error)
	Update(ctx context.Context, callerID, id string, in ExpenseInput) (models.Expense, error)
	Delete(ctx context.Context, callerID, id string) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Expenses
}

// Options carries the startup settings the services need.
type Options struct {
	Tokens     *TokenService
	BcryptCost int
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.Tokens, opts.BcryptCost),
		Expenses:      NewExpenseService(repos.Expenses),
	}
}
