package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

// memExpenseRepo is an in-memory repository.ExpenseRepo with the same
// ownership filtering as the SQLite implementation.
type memExpenseRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]models.Expense
	order map[string]int

	listErr error
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{items: map[string]models.Expense{}, order: map[string]int{}}
}

func (m *memExpenseRepo) Create(_ context.Context, e models.Expense) (models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if e.ID == "" {
		e.ID = fmt.Sprintf("e-%d", m.seq)
	}
	m.items[e.ID] = e
	m.order[e.ID] = m.seq
	return e, nil
}

func (m *memExpenseRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Expense, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Expense
	for _, e := range m.items {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.order[out[i].ID] > m.order[out[j].ID]
	})
	return out, nil
}

func (m *memExpenseRepo) GetByOwner(_ context.Context, ownerID, id string) (models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok || e.OwnerID != ownerID {
		return models.Expense{}, repository.ErrNotFound
	}
	return e, nil
}

func (m *memExpenseRepo) UpdateByOwner(_ context.Context, ownerID, id, description string, amount float64) (models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok || e.OwnerID != ownerID {
		return models.Expense{}, repository.ErrNotFound
	}
	e.Description, e.Amount = description, amount
	m.items[id] = e
	return e, nil
}

func (m *memExpenseRepo) DeleteByOwner(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok || e.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func newTestExpenseService(repo repository.ExpenseRepo) *ExpenseService {
	svc := NewExpenseService(repo)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	var tick int
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc
}

func TestExpenseService_CreateRoundTrip(t *testing.T) {
	svc := newTestExpenseService(newMemExpenseRepo())
	ctx := context.Background()

	for _, amount := range []float64{4.5, 0, -12.25} {
		e, err := svc.Create(ctx, "alice", ExpenseInput{Description: "Coffee", Amount: amount})
		if err != nil {
			t.Fatalf("Create(%v): %v", amount, err)
		}
		if e.ID == "" || e.OwnerID != "alice" || e.Description != "Coffee" || e.Amount != amount {
			t.Fatalf("unexpected expense: %+v", e)
		}
		if e.CreatedAt.IsZero() {
			t.Fatalf("expected created_at to be set")
		}
	}
}

func TestExpenseService_CreateRequiresDescription(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := newTestExpenseService(repo)

	_, err := svc.Create(context.Background(), "alice", ExpenseInput{Description: "  ", Amount: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(repo.items))
	}
}

func TestExpenseService_ListNewestFirst(t *testing.T) {
	svc := newTestExpenseService(newMemExpenseRepo())
	ctx := context.Background()

	const n = 5
	var ids []string
	for i := 0; i < n; i++ {
		e, err := svc.Create(ctx, "alice", ExpenseInput{Description: fmt.Sprintf("item %d", i), Amount: float64(i)})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, e.ID)
	}

	got, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != n {
		t.Fatalf("expected %d expenses, got %d", n, len(got))
	}
	for i := range got {
		if got[i].ID != ids[n-1-i] {
			t.Fatalf("position %d: want %s, got %s", i, ids[n-1-i], got[i].ID)
		}
		if i > 0 && got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("not sorted newest first at %d", i)
		}
	}
}

func TestExpenseService_ListEmptyIsNonNil(t *testing.T) {
	svc := newTestExpenseService(newMemExpenseRepo())
	got, err := svc.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil {
		t.Fatalf("expected empty non-nil slice")
	}
}

func TestExpenseService_ListRepoErrorPropagation(t *testing.T) {
	repo := newMemExpenseRepo()
	repo.listErr = errors.New("db down")
	svc := newTestExpenseService(repo)

	if _, err := svc.List(context.Background(), "alice"); !errors.Is(err, repo.listErr) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}

func TestExpenseService_OwnershipIsolation(t *testing.T) {
	svc := newTestExpenseService(newMemExpenseRepo())
	ctx := context.Background()

	mine, err := svc.Create(ctx, "alice", ExpenseInput{Description: "Rent", Amount: 900})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := svc.List(ctx, "bob")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("bob sees alice's expenses: %+v", list)
	}

	if _, err := svc.Get(ctx, "bob", mine.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("Get by foreign user: expected ErrExpenseNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, "bob", mine.ID, ExpenseInput{Description: "hacked", Amount: 0}); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("Update by foreign user: expected ErrExpenseNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "bob", mine.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("Delete by foreign user: expected ErrExpenseNotFound, got %v", err)
	}

	// the record is untouched for its owner
	got, err := svc.Get(ctx, "alice", mine.ID)
	if err != nil {
		t.Fatalf("Get by owner: %v", err)
	}
	if got != mine {
		t.Fatalf("record changed: want %+v, got %+v", mine, got)
	}
}

func TestExpenseService_UpdateThenDeleteLifecycle(t *testing.T) {
	svc := newTestExpenseService(newMemExpenseRepo())
	ctx := context.Background()

	e, err := svc.Create(ctx, "alice", ExpenseInput{Description: "Coffee", Amount: 4.5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	upd, err := svc.Update(ctx, "alice", e.ID, ExpenseInput{Description: "Tea", Amount: 3.0})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Description != "Tea" || upd.Amount != 3.0 || upd.ID != e.ID || !upd.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("unexpected updated expense: %+v", upd)
	}

	list, _ := svc.List(ctx, "alice")
	if len(list) != 1 || list[0] != upd {
		t.Fatalf("list does not reflect update: %+v", list)
	}

	if _, err := svc.Update(ctx, "alice", e.ID, ExpenseInput{Description: "", Amount: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank description, got %v", err)
	}

	if err := svc.Delete(ctx, "alice", e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "alice", e.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("second Delete: expected ErrExpenseNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, "alice", e.ID, ExpenseInput{Description: "Tea", Amount: 3}); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("Update after delete: expected ErrExpenseNotFound, got %v", err)
	}
}
