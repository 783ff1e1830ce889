package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

// ErrExpenseNotFound covers both a missing id and an id owned by another user.
var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseService struct {
	repo repository.ExpenseRepo
	now  func() time.Time
}

func NewExpenseService(repo repository.ExpenseRepo) *ExpenseService {
	return &ExpenseService{repo: repo, now: time.Now}
}

func validateExpenseInput(in ExpenseInput) error {
	if isBlank(in.Description) {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	return nil
}

// translateNotFound maps the repository miss onto the service sentinel.
func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExpenseNotFound
	}
	return err
}

// Create stores a new expense owned by callerID.
func (s *ExpenseService) Create(ctx context.Context, callerID string, in ExpenseInput) (models.Expense, error) {
	if err := validateExpenseInput(in); err != nil {
		return models.Expense{}, err
	}
	return s.repo.Create(ctx, models.Expense{
		OwnerID:     callerID,
		Description: in.Description,
		Amount:      in.Amount,
		CreatedAt:   s.now().UTC(),
	})
}

// List returns callerID's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, callerID string) ([]models.Expense, error) {
	out, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Expense{}
	}
	return out, nil
}

func (s *ExpenseService) Get(ctx context.Context, callerID, id string) (models.Expense, error) {
	e, err := s.repo.GetByOwner(ctx, callerID, id)
	return e, translateNotFound(err)
}

// Update replaces description and amount together on an expense owned by callerID.
func (s *ExpenseService) Update(ctx context.Context, callerID, id string, in ExpenseInput) (models.Expense, error) {
	if err := validateExpenseInput(in); err != nil {
		return models.Expense{}, err
	}
	e, err := s.repo.UpdateByOwner(ctx, callerID, id, in.Description, in.Amount)
	return e, translateNotFound(err)
}

func (s *ExpenseService) Delete(ctx context.Context, callerID, id string) error {
	return translateNotFound(s.repo.DeleteByOwner(ctx, callerID, id))
}
