package handlers

import (
	"net/http"

	_ "expense_tracker/docs" // swagger docs
	"expense_tracker/internal/logger"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log, metrics: newMetrics()}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, h.metrics.middleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(h.metrics.handler()))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerExpenseRoutes(router)

	return router
}

// HTTPHandler wraps the router with CORS for the given origins ("*" allows any).
func (h *Handler) HTTPHandler(origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h.InitRoutes())
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
}

func (h *Handler) registerExpenseRoutes(r *gin.Engine) {
	expenses := r.Group("/expenses", h.userIdentity)
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// Response bodies shared by all handlers.
const (
	msgServerError     = "Server error"
	msgAccessDenied    = "Access denied"
	msgInvalidToken    = "Invalid token"
	msgUserExists      = "User already exists"
	msgInvalidCreds    = "Invalid credentials"
	msgExpenseNotFound = "Expense not found"
	msgExpenseDeleted  = "Expense deleted"
	msgRegistered      = "User registered successfully"
	msgLoggedIn        = "Login successful"
	msgInvalidBody     = "Invalid request body"
	msgRootBanner      = "API Working"
)

// messageResponse is the JSON shape of every non-entity response.
type messageResponse struct {
	Message string `json:"message" example:"Expense deleted"`
}

// invalidInput answers 400 with the service's validation message.
func (h *Handler) invalidInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody + ": " + err.Error()})
}

// serverError logs err with context and answers with the generic 500 body.
func (h *Handler) serverError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	fields := append([]interface{}{"err", err}, kv...)
	h.log.Errorw(logKey, fields...)
	c.JSON(http.StatusInternalServerError, messageResponse{Message: msgServerError})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return false
	}
	return true
}

// @Summary      Liveness probe
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "API Working"
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, msgRootBanner)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
