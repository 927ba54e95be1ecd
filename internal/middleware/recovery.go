package middleware

import (
	"bytes"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// ErrorPageRenderer is the interface for rendering the shared error page
type ErrorPageRenderer interface {
	// Method Render executes the named page template into w
	Render(w io.Writer, name string, data any) error
}

// RecoveryMiddleware turns a panicking handler into a 500 error page.
// A nil renderer, or one that fails, falls back to a plain text response.
func RecoveryMiddleware(logger *zap.Logger, renderer ErrorPageRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := GetRequestID(r.Context())
					logger.Error("panic recovered",
						zap.String("request_id", requestID),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("error", err),
					)

					writeErrorPage(w, renderer, logger, requestID)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeErrorPage(w http.ResponseWriter, renderer ErrorPageRenderer, logger *zap.Logger, requestID string) {
	status := http.StatusInternalServerError
	if renderer != nil {
		var buf bytes.Buffer
		err := renderer.Render(&buf, "error", map[string]any{
			"error":       "Something went wrong while handling your request.",
			"status_code": status,
			"status":      http.StatusText(status),
			"request_id":  requestID,
		})
		if err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			buf.WriteTo(w)
			return
		}
		logger.Error("failed to render error page", zap.String("request_id", requestID), zap.Error(err))
	}

	http.Error(w, http.StatusText(status), status)
}
