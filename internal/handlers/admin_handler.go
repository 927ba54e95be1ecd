package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/touristfeedback/backend/internal/metrics"
	"github.com/touristfeedback/backend/internal/middleware"
	"github.com/touristfeedback/backend/internal/models"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps methods for feedback moderation.
type AdminService interface {
	// Method ListFeedback retrieves all feedback, newest first, with the author's name.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListFeedback(ctx context.Context) ([]models.FeedbackWithAuthor, error)
	// Method DeleteFeedback removes a feedback row.
	//
	// Deleting an ID that does not exist is not an error.
	DeleteFeedback(ctx context.Context, feedbackID int) error
}

// AdminHandler handles the admin dashboard and feedback deletion
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, renderer Renderer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{logger: logger, renderer: renderer},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes behind an admin session check
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleAdmin, adminLoginPath))
		r.Get("/admin/dashboard", h.Dashboard)
		r.Post("/admin/delete_feedback", h.DeleteFeedback)
	})
}

// Dashboard handles GET /admin/dashboard
// @Summary Admin dashboard
// @Description Lists all feedback, newest first, with the author's name (empty for orphaned rows).
// @Tags admin
// @Produce html
// @Success 200 {string} string "HTML page"
// @Success 303 {string} string "Redirect to /admin/login without an admin session"
// @Failure 500 {string} string "Internal server error"
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.adminService.ListFeedback(r.Context())
	if err != nil {
		h.logger.Error("failed to list feedback", zap.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.render(w, r, http.StatusOK, "admin_dashboard", map[string]any{
		"title":     "Admin dashboard",
		"feedbacks": feedbacks,
	})
}

// DeleteFeedback handles POST /admin/delete_feedback
// @Summary Delete feedback
// @Tags admin
// @Accept x-www-form-urlencoded
// @Param fid formData int true "Feedback ID"
// @Success 303 {string} string "Redirect to /admin/dashboard"
// @Failure 400 {string} string "Invalid fid"
// @Failure 500 {string} string "Internal server error"
// @Router /admin/delete_feedback [post]
func (h *AdminHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	feedbackID, err := formInt(r, "fid")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.adminService.DeleteFeedback(r.Context(), feedbackID); err != nil {
		h.logger.Error("failed to delete feedback", zap.Int("feedbackId", feedbackID), zap.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.FeedbackDeleted.Inc()
	h.redirect(w, r, "/admin/dashboard")
}
