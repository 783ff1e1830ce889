package handlers

import (
	"errors"
	"net/http"

	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// expenseRequest is the body of create and update. Amount is a pointer so
// that 0 is accepted while a missing field is not.
type expenseRequest struct {
	Description string   `json:"description" binding:"required" example:"Coffee"`
	Amount      *float64 `json:"amount" binding:"required" example:"4.5"`
}

func (r expenseRequest) input() service.ExpenseInput {
	return service.ExpenseInput{Description: r.Description, Amount: *r.Amount}
}

// caller returns the authenticated identity or answers 401 when it is absent.
func (h *Handler) caller(c *gin.Context) (service.Identity, bool) {
	id, ok := callerIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, messageResponse{Message: msgAccessDenied})
	}
	return id, ok
}

// expenseError maps service outcomes that are not success to a response.
func (h *Handler) expenseError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		c.JSON(http.StatusNotFound, messageResponse{Message: msgExpenseNotFound})
	case errors.Is(err, service.ErrInvalidInput):
		h.invalidInput(c, err)
	default:
		h.serverError(c, logKey, err, kv...)
	}
}

// @Summary      Create expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      expenseRequest  true  "Expense payload"
// @Success      201   {object}  models.Expense
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /expenses [post]
// @Security     BearerAuth
func (h *Handler) createExpense(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	var req expenseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	e, err := h.services.Expenses.Create(c.Request.Context(), id.UserID, req.input())
	if err != nil {
		h.expenseError(c, "expense_create_failed", err, "user_id", id.UserID)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// @Summary      List expenses
// @Description  Caller's expenses, newest first.
// @Tags         expenses
// @Produce      json
// @Success      200  {array}   models.Expense
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /expenses [get]
// @Security     BearerAuth
func (h *Handler) listExpenses(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}

	list, err := h.services.Expenses.List(c.Request.Context(), id.UserID)
	if err != nil {
		h.serverError(c, "expense_list_failed", err, "user_id", id.UserID)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Get expense
// @Tags         expenses
// @Produce      json
// @Param        id   path      string  true  "Expense ID"
// @Success      200  {object}  models.Expense
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /expenses/{id} [get]
// @Security     BearerAuth
func (h *Handler) getExpense(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	expenseID := c.Param("id")

	e, err := h.services.Expenses.Get(c.Request.Context(), id.UserID, expenseID)
	if err != nil {
		h.expenseError(c, "expense_get_failed", err, "user_id", id.UserID, "expense_id", expenseID)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary      Update expense
// @Description  Sets description and amount together.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Expense ID"
// @Param        body  body      expenseRequest  true  "Expense payload"
// @Success      200   {object}  models.Expense
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /expenses/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateExpense(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	var req expenseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	expenseID := c.Param("id")

	e, err := h.services.Expenses.Update(c.Request.Context(), id.UserID, expenseID, req.input())
	if err != nil {
		h.expenseError(c, "expense_update_failed", err, "user_id", id.UserID, "expense_id", expenseID)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary      Delete expense
// @Tags         expenses
// @Produce      json
// @Param        id   path      string  true  "Expense ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /expenses/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteExpense(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	expenseID := c.Param("id")

	if err := h.services.Expenses.Delete(c.Request.Context(), id.UserID, expenseID); err != nil {
		h.expenseError(c, "expense_delete_failed", err, "user_id", id.UserID, "expense_id", expenseID)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: msgExpenseDeleted})
}
