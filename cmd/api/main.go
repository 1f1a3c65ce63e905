// @title Mini Event Management System
// @version 1.0.0
// @description API for creating events, registering attendees, viewing attendee lists.
// @BasePath /api/v1
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"minieventms/config"
	_ "minieventms/docs"
	"minieventms/internal/clock"
	delivery "minieventms/internal/delivery/http"
	"minieventms/internal/delivery/http/controllers"
	"minieventms/internal/delivery/http/middleware"
	"minieventms/internal/repository/postgres"
	"minieventms/internal/services"
	"minieventms/migrations"
)

const (
	serviceTimeout  = 5 * time.Second
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	eventSvc := services.NewEventService(eventRepo, clk, serviceTimeout)
	attendeeSvc := services.NewAttendeeService(eventRepo, attendeeRepo, clk, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventSvc)
	attendeeController := controllers.NewAttendeeController(logger, attendeeSvc)

	registrationLimiter := middleware.NewRateLimiter(cfg.RegistrationRatePerMinute)
	defer registrationLimiter.Stop()

	mux := delivery.NewRouter(eventController, attendeeController, registrationLimiter)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment)
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
