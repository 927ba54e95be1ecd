package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/touristfeedback/backend/internal/models"
	"github.com/touristfeedback/backend/internal/session"
)

const sessionKey contextKey = "session"

// SessionMiddleware attaches the claims of a valid session cookie to the request context.
// Requests without a valid session pass through anonymously.
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := manager.FromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the session claims from context
func GetSession(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(sessionKey).(*session.Claims)
	return claims, ok
}

// RequireRole redirects to loginPath unless the request carries a session with the given role
func RequireRole(role models.Role, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetSession(r.Context())
			if !ok || claims.Role != role {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwner redirects to loginPath unless the user id in the "param" query or form value
// belongs to the session user. It must run after RequireRole.
func RequireOwner(param, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetSession(r.Context())
			if !ok || r.FormValue(param) != strconv.Itoa(claims.UserID) {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
