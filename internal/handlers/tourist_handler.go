package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/touristfeedback/backend/internal/metrics"
	"github.com/touristfeedback/backend/internal/middleware"
	"github.com/touristfeedback/backend/internal/models"
	"github.com/touristfeedback/backend/internal/validation"
	"go.uber.org/zap"
)

// UserService is the interface that wraps user lookup
type UserService interface {
	// Method GetUser retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// FeedbackService is the interface that wraps methods for tourist feedback business logic.
type FeedbackService interface {
	// Method Submit stores a new feedback row for the user in "req".
	//
	// If some error occurs during data insert, the error will be returned together with "nil" value.
	Submit(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error)
	// Method ListByUser retrieves a user's feedback history, newest first.
	ListByUser(ctx context.Context, userID int) ([]models.FeedbackWithAuthor, error)
	// Method Analyze computes the rating histogram, total count, average rating and
	// distinct location count over all feedback.
	Analyze(ctx context.Context) (*models.FeedbackAnalysis, error)
}

// TouristHandler handles the tourist dashboard, feedback submission and analysis pages
type TouristHandler struct {
	BaseHandler
	userService     UserService
	feedbackService FeedbackService
}

// NewTouristHandler creates a new tourist handler
func NewTouristHandler(
	userService UserService,
	feedbackService FeedbackService,
	renderer Renderer,
	logger *zap.Logger,
) *TouristHandler {
	return &TouristHandler{
		BaseHandler:     BaseHandler{logger: logger, renderer: renderer},
		userService:     userService,
		feedbackService: feedbackService,
	}
}

// RegisterRoutes registers all tourist handler routes.
// Every route requires a tourist session owning the "uid" parameter.
func (h *TouristHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleTourist, touristLoginPath))
		r.Use(middleware.RequireOwner("uid", touristLoginPath))

		r.Get("/tourist_dashboard", h.Dashboard)
		r.Post("/tourist/submit_feedback", h.SubmitFeedback)
		r.Get("/tourist/analysis", h.Analysis)
	})
}

// Dashboard handles GET /tourist_dashboard
// @Summary Tourist dashboard
// @Description Shows the submission form and the user's feedback history, newest first.
// @Tags tourist
// @Produce html
// @Param uid query int true "User ID"
// @Success 200 {string} string "HTML page"
// @Success 303 {string} string "Redirect to /tourist/login when the user does not exist"
// @Failure 400 {string} string "Invalid uid"
// @Failure 500 {string} string "Internal server error"
// @Router /tourist_dashboard [get]
func (h *TouristHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	feedbacks, err := h.feedbackService.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list feedback", zap.Int("userId", user.ID), zap.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.render(w, r, http.StatusOK, "tourist_dashboard", map[string]any{
		"title":     "Dashboard",
		"user":      user,
		"feedbacks": feedbacks,
	})
}

// SubmitFeedback handles POST /tourist/submit_feedback
// @Summary Submit feedback
// @Description Stores one feedback row. Rating bounds and the visit date format are not checked.
// @Tags tourist
// @Accept x-www-form-urlencoded
// @Param uid formData int true "User ID"
// @Param location formData string true "Location"
// @Param visit_date formData string true "Visit date"
// @Param rating formData int true "Rating"
// @Param category formData string true "Category"
// @Param comment formData string true "Comment"
// @Param recommend formData string true "Recommend"
// @Success 303 {string} string "Redirect to /tourist/analysis"
// @Failure 400 {string} string "Missing or malformed form field"
// @Failure 500 {string} string "Internal server error"
// @Router /tourist/submit_feedback [post]
func (h *TouristHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := formInt(r, "uid")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	rating, err := formInt(r, "rating")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req := &models.FeedbackRequest{
		UserID:    userID,
		Location:  r.FormValue("location"),
		VisitDate: r.FormValue("visit_date"),
		Rating:    rating,
		Category:  r.FormValue("category"),
		Comment:   r.FormValue("comment"),
		Recommend: r.FormValue("recommend"),
	}
	if err := validation.ValidateStruct(req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.feedbackService.Submit(r.Context(), req); err != nil {
		h.logger.Error("failed to submit feedback", zap.Int("userId", userID), zap.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.FeedbackSubmitted.Inc()
	h.redirect(w, r, fmt.Sprintf("/tourist/analysis?uid=%d", userID))
}

// Analysis handles GET /tourist/analysis
// @Summary Feedback analysis
// @Description Rating histogram, total count, average rating and distinct places over all feedback.
// @Tags tourist
// @Produce html
// @Param uid query int true "User ID"
// @Success 200 {string} string "HTML page"
// @Success 303 {string} string "Redirect to /tourist/login when the user does not exist"
// @Failure 400 {string} string "Invalid uid"
// @Failure 500 {string} string "Internal server error"
// @Router /tourist/analysis [get]
func (h *TouristHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	analysis, err := h.feedbackService.Analyze(r.Context())
	if err != nil {
		h.logger.Error("failed to analyze feedback", zap.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.render(w, r, http.StatusOK, "analysis", map[string]any{
		"title":          "Analysis",
		"user":           user,
		"ratings":        analysis.Ratings,
		"total_feedback": analysis.TotalFeedback,
		"avg_rating":     analysis.AverageRating,
		"places_count":   analysis.PlacesCount,
	})
}

// loadUser resolves the "uid" parameter to a user, writing the response itself when it cannot
func (h *TouristHandler) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	userID, err := formInt(r, "uid")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if errors.Is(err, models.ErrUserNotFound) {
		h.redirect(w, r, touristLoginPath)
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to get user", zap.Int("userId", userID), zap.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	return user, true
}
