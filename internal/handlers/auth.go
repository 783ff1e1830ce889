package handlers

import (
	"errors"
	"net/http"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required" example:"Alice"`
	Email    string `json:"email" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"pw123"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"pw123"`
}

type loginResponse struct {
	Message string             `json:"message" example:"Login successful"`
	Token   string             `json:"token"`
	User    models.UserSummary `json:"user"`
}

// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration payload"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse  "User already exists or invalid body"
// @Failure      500   {object}  messageResponse
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	switch {
	case err == nil:
		h.metrics.authEvent("register_ok")
		c.JSON(http.StatusCreated, messageResponse{Message: msgRegistered})
	case errors.Is(err, service.ErrUserExists):
		h.metrics.authEvent("register_conflict")
		h.log.Infow("auth_register_conflict", "email", input.Email)
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgUserExists})
	case errors.Is(err, service.ErrInvalidInput):
		h.invalidInput(c, err)
	default:
		h.serverError(c, "auth_register_failed", err, "email", input.Email)
	}
}

// @Summary      Log in
// @Description  Returns a bearer token valid for one hour.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse  "Invalid credentials"
// @Failure      500   {object}  messageResponse
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	switch {
	case err == nil:
		h.metrics.authEvent("login_ok")
		c.JSON(http.StatusOK, loginResponse{Message: msgLoggedIn, Token: res.Token, User: res.User})
	case errors.Is(err, service.ErrInvalidCredentials):
		h.metrics.authEvent("login_failed")
		// same body for unknown email and wrong password
		h.log.Infow("auth_login_failed", "email", input.Email)
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidCreds})
	default:
		h.serverError(c, "auth_login_error", err, "email", input.Email)
	}
}
