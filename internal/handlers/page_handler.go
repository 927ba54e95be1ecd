package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PageHandler serves the landing page and the liveness check
type PageHandler struct {
	BaseHandler
}

// NewPageHandler creates a new page handler
func NewPageHandler(renderer Renderer, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		BaseHandler: BaseHandler{logger: logger, renderer: renderer},
	}
}

// RegisterRoutes registers all page handler routes
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/health", h.Health)
}

// Index handles GET /
// @Summary Landing page
// @Tags pages
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index", map[string]any{"title": "Welcome"})
}

// Health handles GET /health
// @Summary Liveness check
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
