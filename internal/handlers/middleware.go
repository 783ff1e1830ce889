package handlers

import (
	"net/http"
	"strings"
	"time"

	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userId"
	ctxEmail  = "email"

	bearerPrefix = "Bearer "
)

// userIdentity rejects requests without a valid bearer token and stores the
// caller identity in the gin context.
func (h *Handler) userIdentity(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, messageResponse{Message: msgAccessDenied})
		return
	}

	id, err := h.services.ParseToken(strings.TrimSpace(token))
	if err != nil {
		h.log.Infow("auth_token_rejected", "path", c.FullPath(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, messageResponse{Message: msgInvalidToken})
		return
	}

	c.Set(ctxUserID, id.UserID)
	c.Set(ctxEmail, id.Email)
	c.Next()
}

// callerIdentity reads what userIdentity stored.
func callerIdentity(c *gin.Context) (service.Identity, bool) {
	id := service.Identity{UserID: c.GetString(ctxUserID), Email: c.GetString(ctxEmail)}
	return id, id.UserID != ""
}

// requestLogger writes one structured line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
		"user_id", c.GetString(ctxUserID),
	)
}
