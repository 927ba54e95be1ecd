package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/touristfeedback/backend/internal/middleware"
	"go.uber.org/zap"
)

// Renderer is the interface that wraps page template execution
type Renderer interface {
	// Method Render executes the template named "name" with "data" into "w".
	//
	// If the template does not exist or fails to execute, the error will be returned.
	Render(w io.Writer, name string, data any) error
}

// BaseHandler carries the logger and renderer shared by all page handlers
type BaseHandler struct {
	logger   *zap.Logger
	renderer Renderer
}

// render executes a page template and writes it with the given status.
// A template failure is logged and turned into a plain 500 response.
func (h *BaseHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, payload map[string]any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, h.pageData(r, payload)); err != nil {
		h.logger.Error("failed to render page", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderError renders the error page
func (h *BaseHandler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", map[string]any{
		"error":       message,
		"status_code": status,
		"status":      http.StatusText(status),
	})
}

// redirect sends a 303 See Other to url
func (h *BaseHandler) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// pageData merges request-scoped values shared by every page into payload
func (h *BaseHandler) pageData(r *http.Request, payload map[string]any) map[string]any {
	data := map[string]any{
		"request_id": middleware.GetRequestID(r.Context()),
	}
	if claims, ok := middleware.GetSession(r.Context()); ok {
		data["session"] = claims
	}

	for k, v := range payload {
		data[k] = v
	}

	return data
}

// formInt reads a required integer form or query value
func formInt(r *http.Request, name string) (int, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}

	return value, nil
}
