package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/touristfeedback/backend/internal/metrics"
)

// MetricsMiddleware records request duration labelled by the matched chi route pattern
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, routePattern(r), strconv.Itoa(ww.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}
