package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/touristfeedback/backend/docs"
	"github.com/touristfeedback/backend/internal/config"
	"github.com/touristfeedback/backend/internal/database"
	"github.com/touristfeedback/backend/internal/logger"
	"github.com/touristfeedback/backend/internal/models"
	"github.com/touristfeedback/backend/internal/services"
	"go.uber.org/zap"
)

const maxRequestSize = 1 << 20 // 1MB

// @title Tourist Feedback
// @version 1.0
// @description Server-rendered tourist feedback application: registration, login, feedback submission, analysis and moderation.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Tourist Feedback server")

	// Open the store
	db, err := database.Open(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	created, err := database.Bootstrap(context.Background(), db, models.User{
		Fullname:     cfg.Admin.Fullname,
		Email:        cfg.Admin.Email,
		PasswordHash: services.HashPassword(cfg.Admin.Password),
	})
	if err != nil {
		logger.Logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if created {
		logger.Logger.Info("Database initialized", zap.String("path", cfg.Database.Path), zap.String("admin", cfg.Admin.Email))
	}

	router, err := newRouter(cfg, db)
	if err != nil {
		logger.Logger.Fatal("Failed to build router", zap.Error(err))
	}

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
