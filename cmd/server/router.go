package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/touristfeedback/backend/internal/config"
	"github.com/touristfeedback/backend/internal/handlers"
	"github.com/touristfeedback/backend/internal/logger"
	"github.com/touristfeedback/backend/internal/middleware"
	"github.com/touristfeedback/backend/internal/repositories"
	"github.com/touristfeedback/backend/internal/services"
	"github.com/touristfeedback/backend/internal/session"
	"github.com/touristfeedback/backend/internal/web"
)

// newRouter wires repositories, services and handlers onto a chi router
func newRouter(cfg *config.Config, db *sql.DB) (http.Handler, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.CookieSecure)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	feedbackRepo := repositories.NewFeedbackRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, logger.Logger)
	feedbackService := services.NewFeedbackService(feedbackRepo, logger.Logger)
	adminService := services.NewAdminService(feedbackRepo, logger.Logger)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(renderer, logger.Logger)
	authHandler := handlers.NewAuthHandler(authService, sessions, renderer, logger.Logger)
	touristHandler := handlers.NewTouristHandler(authService, feedbackService, renderer, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, renderer, logger.Logger)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger, renderer))
	r.Use(middleware.RequestSizeLimitMiddleware(maxRequestSize))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.SessionMiddleware(sessions))

	r.Handle("/static/*", web.StaticHandler())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	pageHandler.RegisterRoutes(r)
	authHandler.RegisterRoutes(r)
	touristHandler.RegisterRoutes(r)
	adminHandler.RegisterRoutes(r)

	return r, nil
}
