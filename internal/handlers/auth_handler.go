package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/touristfeedback/backend/internal/metrics"
	"github.com/touristfeedback/backend/internal/models"
	"github.com/touristfeedback/backend/internal/validation"
	"go.uber.org/zap"
)

const (
	touristLoginPath = "/tourist/login"
	adminLoginPath   = "/admin/login"
)

// AuthService is the interface that wraps methods for registration and authentication business logic.
type AuthService interface {
	// Method Register creates a tourist account from the registration form.
	//
	// "req" parameter contains full name, email and plaintext password.
	//
	// If the email is already registered, models.ErrEmailTaken is returned (wrapped).
	// If some other error occurs, the error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Method Login looks up a user by email, password and role.
	//
	// "role" parameter restricts the lookup to tourists or administrators.
	//
	// If nothing matches, models.ErrInvalidCredentials is returned together with "nil" value.
	Login(ctx context.Context, req *models.LoginRequest, role models.Role) (*models.User, error)
}

// SessionIssuer is the interface that wraps session cookie handling
type SessionIssuer interface {
	// Method SetCookie issues a session for the user and writes it as a cookie.
	SetCookie(w http.ResponseWriter, userID int, role models.Role) error
	// Method ClearCookie expires the session cookie.
	ClearCookie(w http.ResponseWriter)
}

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	BaseHandler
	authService AuthService
	sessions    SessionIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService AuthService,
	sessions SessionIssuer,
	renderer Renderer,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tourist/register", h.RegisterForm)
	r.Post("/tourist/register", h.Register)
	r.Get("/tourist/login", h.loginForm(models.RoleTourist))
	r.Post("/tourist/login", h.login(models.RoleTourist))
	r.Get("/admin/login", h.loginForm(models.RoleAdmin))
	r.Post("/admin/login", h.login(models.RoleAdmin))
	r.Get("/logout", h.Logout)
	r.Post("/logout", h.Logout)
}

// RegisterForm handles GET /tourist/register
// @Summary Registration form
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /tourist/register [get]
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, "", "", "")
}

// Register handles POST /tourist/register
// @Summary Register a new tourist
// @Description Creates a tourist account. A duplicate email re-renders the form with an error.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param fullname formData string true "Full name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 {string} string "Redirect to /tourist/login"
// @Success 200 {string} string "Form re-rendered with an error"
// @Failure 400 {string} string "Missing form field"
// @Router /tourist/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := &models.RegisterRequest{
		Fullname: r.FormValue("fullname"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := validation.ValidateStruct(req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.authService.Register(r.Context(), req); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
			h.renderRegister(w, r, req.Fullname, req.Email, models.ErrEmailTaken.Error())
			return
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		h.logger.Error("failed to register user", zap.Error(err))
		h.renderRegister(w, r, req.Fullname, req.Email, "registration failed, please try again")
		return
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	h.redirect(w, r, touristLoginPath)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, fullname, email, errMsg string) {
	h.render(w, r, http.StatusOK, "register", map[string]any{
		"title":    "Register",
		"role":     string(models.RoleTourist),
		"fullname": fullname,
		"email":    email,
		"error":    errMsg,
	})
}

// loginForm handles GET /tourist/login and GET /admin/login
// @Summary Login form
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /tourist/login [get]
// @Router /admin/login [get]
func (h *AuthHandler) loginForm(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderLogin(w, r, role, "", "")
	}
}

// login handles POST /tourist/login and POST /admin/login
// @Summary Log in
// @Description Checks email and password for the role of the path. Success sets the session cookie and redirects to the dashboard; a mismatch re-renders the form with "Invalid credentials".
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 {string} string "Redirect to the dashboard"
// @Success 200 {string} string "Form re-rendered with an error"
// @Failure 400 {string} string "Missing form field"
// @Failure 500 {string} string "Internal server error"
// @Router /tourist/login [post]
// @Router /admin/login [post]
func (h *AuthHandler) login(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &models.LoginRequest{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		if err := validation.ValidateStruct(req); err != nil {
			h.renderError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		user, err := h.authService.Login(r.Context(), req, role)
		if errors.Is(err, models.ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues(string(role), "invalid").Inc()
			h.renderLogin(w, r, role, req.Email, "Invalid credentials")
			return
		}
		if err != nil {
			metrics.Logins.WithLabelValues(string(role), "error").Inc()
			h.logger.Error("failed to log in", zap.String("role", string(role)), zap.Error(err))
			h.renderError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

		if err := h.sessions.SetCookie(w, user.ID, user.Role); err != nil {
			metrics.Logins.WithLabelValues(string(role), "error").Inc()
			h.logger.Error("failed to issue session", zap.Int("userId", user.ID), zap.Error(err))
			h.renderError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

		metrics.Logins.WithLabelValues(string(role), "success").Inc()
		if role == models.RoleAdmin {
			h.redirect(w, r, "/admin/dashboard")
			return
		}
		h.redirect(w, r, fmt.Sprintf("/tourist_dashboard?uid=%d", user.ID))
	}
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, role models.Role, email, errMsg string) {
	h.render(w, r, http.StatusOK, "login", map[string]any{
		"title": "Log in",
		"role":  string(role),
		"email": email,
		"error": errMsg,
	})
}

// Logout handles GET and POST /logout
// @Summary Log out
// @Tags auth
// @Success 303 {string} string "Redirect to /"
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	h.redirect(w, r, "/")
}
