package repository

import (
	"context"
	"database/sql"
	"errors"

	"expense_tracker/internal/models"
)

var (
	// ErrNotFound is returned when no row matches the (id, owner) filter.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a UNIQUE constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

type Authorization interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ExpenseRepo persists expenses. Every method except Create is scoped by owner.
type ExpenseRepo interface {
	Create(ctx context.Context, e models.Expense) (models.Expense, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Expense, error)
	GetByOwner(ctx context.Context, ownerID, id string) (models.Expense, error)
	UpdateByOwner(ctx context.Context, ownerID, id, description string, amount float64) (models.Expense, error)
	DeleteByOwner(ctx context.Context, ownerID, id string) error
}

type Repository struct {
	Auth     Authorization
	Expenses ExpenseRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(db),
		Expenses: NewExpenseSQLite(db),
	}
}
