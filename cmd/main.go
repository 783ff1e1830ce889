package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense_tracker/internal/config"
	"expense_tracker/internal/handlers"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/repository"
	"expense_tracker/internal/repository/db"
	"expense_tracker/internal/server"
	"expense_tracker/internal/service"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title                       Expense Tracker API
// @version                     1.0
// @description                 Personal expense tracking with per-user data isolation.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger settings live in the config, so fall back to defaults here
		logger.New(logger.Options{}).Fatalw("invalid configuration", "err", err)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	sqlDB, err := db.InitDB(ctx, cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatalw("failed to init sqlite", "dsn", cfg.DBDSN, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	tokens, err := service.NewTokenService(cfg.JWTSecret, service.DefaultTokenTTL)
	if err != nil {
		log.Fatalw("failed to init token service", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Options{Tokens: tokens, BcryptCost: cfg.BcryptCost})
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, cfg, apiHandler, log)

	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config.Config, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", server.Addr(cfg.Port), "cors_origins", cfg.CORSOrigins)
		if err := srv.Run(cfg.Port, handler.HTTPHandler(cfg.CORSOrigins)); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
