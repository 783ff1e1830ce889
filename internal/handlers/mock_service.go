package handlers

import (
	"context"
	"net/http"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerErr error
	loginResult service.LoginResult
	loginErr    error
	parseID     service.Identity
	parseErr    error

	lastRegister      service.RegisterInput
	lastLoginEmail    string
	lastLoginPassword string
	lastParseToken    string
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) error {
	m.lastRegister = in
	return m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (service.LoginResult, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginResult, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockExpenses struct {
	expense models.Expense
	list    []models.Expense
	err     error

	lastCaller string
	lastID     string
	lastInput  service.ExpenseInput
	calls      int
}

func (m *mockExpenses) record(caller, id string, in service.ExpenseInput) {
	m.calls++
	m.lastCaller, m.lastID, m.lastInput = caller, id, in
}

func (m *mockExpenses) Create(_ context.Context, callerID string, in service.ExpenseInput) (models.Expense, error) {
	m.record(callerID, "", in)
	return m.expense, m.err
}

func (m *mockExpenses) List(_ context.Context, callerID string) ([]models.Expense, error) {
	m.record(callerID, "", service.ExpenseInput{})
	return m.list, m.err
}

func (m *mockExpenses) Get(_ context.Context, callerID, id string) (models.Expense, error) {
	m.record(callerID, id, service.ExpenseInput{})
	return m.expense, m.err
}

func (m *mockExpenses) Update(_ context.Context, callerID, id string, in service.ExpenseInput) (models.Expense, error) {
	m.record(callerID, id, in)
	return m.expense, m.err
}

func (m *mockExpenses) Delete(_ context.Context, callerID, id string) error {
	m.record(callerID, id, service.ExpenseInput{})
	return m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
