package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expense_tracker/internal/models"

	"github.com/google/uuid"
)

type ExpenseSQLite struct {
	db *sql.DB
}

func NewExpenseSQLite(db *sql.DB) *ExpenseSQLite {
	return &ExpenseSQLite{db: db}
}

var _ ExpenseRepo = (*ExpenseSQLite)(nil)

const (
	insertExpenseSQL = `INSERT INTO expenses (id, user_id, description, amount, created_at) VALUES (?, ?, ?, ?, ?)`

	listExpensesByOwnerSQL = `SELECT id, user_id, description, amount, created_at FROM expenses WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`

	selectExpenseByOwnerSQL = `SELECT id, user_id, description, amount, created_at FROM expenses WHERE id = ? AND user_id = ?`

	// the ownership filter and the write are one statement
	updateExpenseByOwnerSQL = `UPDATE expenses SET description = ?, amount = ? WHERE id = ? AND user_id = ?`

	deleteExpenseByOwnerSQL = `DELETE FROM expenses WHERE id = ? AND user_id = ?`
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(s rowScanner) (models.Expense, error) {
	var e models.Expense
	if err := s.Scan(&e.ID, &e.OwnerID, &e.Description, &e.Amount, &e.CreatedAt); err != nil {
		return models.Expense{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

// Create inserts a new expense. If ID or CreatedAt are empty, they’re set.
func (r *ExpenseSQLite) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	} else {
		e.CreatedAt = e.CreatedAt.UTC()
	}

	if _, err := r.db.ExecContext(ctx, insertExpenseSQL,
		e.ID,
		e.OwnerID,
		e.Description,
		e.Amount,
		e.CreatedAt,
	); err != nil {
		return models.Expense{}, fmt.Errorf("insert expense for user %q: %w", e.OwnerID, err)
	}
	return e, nil
}

// ListByOwner returns the owner's expenses, newest first. Never returns nil on success.
func (r *ExpenseSQLite) ListByOwner(ctx context.Context, ownerID string) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, listExpensesByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list expenses for user %q: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Expense, 0, 16)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// GetByOwner fetches one expense matching both id and owner.
func (r *ExpenseSQLite) GetByOwner(ctx context.Context, ownerID, id string) (models.Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx, selectExpenseByOwnerSQL, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, ErrNotFound
		}
		return models.Expense{}, fmt.Errorf("select expense %q: %w", id, err)
	}
	return e, nil
}

// UpdateByOwner sets description and amount on the expense matching both id
// and owner and returns the updated row read back in the same transaction.
func (r *ExpenseSQLite) UpdateByOwner(ctx context.Context, ownerID, id, description string, amount float64) (models.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Expense{}, fmt.Errorf("begin update expense %q: %w", id, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, updateExpenseByOwnerSQL, description, amount, id, ownerID)
	if err != nil {
		return models.Expense{}, fmt.Errorf("update expense %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Expense{}, fmt.Errorf("rows affected for expense %q: %w", id, err)
	}
	if n == 0 {
		return models.Expense{}, ErrNotFound
	}

	e, err := scanExpense(tx.QueryRowContext(ctx, selectExpenseByOwnerSQL, id, ownerID))
	if err != nil {
		return models.Expense{}, fmt.Errorf("reload expense %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return models.Expense{}, fmt.Errorf("commit update expense %q: %w", id, err)
	}
	return e, nil
}

// DeleteByOwner removes the expense matching both id and owner.
func (r *ExpenseSQLite) DeleteByOwner(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, deleteExpenseByOwnerSQL, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for expense %q: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
