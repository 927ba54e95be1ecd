package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touristfeedback/backend/internal/models"
	"github.com/touristfeedback/backend/internal/session"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
})

func TestRequestIDMiddleware(t *testing.T) {
	const incoming = "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name       string
		headerID   string
		expectedID string
	}{
		{name: "generates id", headerID: ""},
		{name: "keeps incoming uuid", headerID: incoming, expectedID: incoming},
		{name: "normalizes uppercase uuid", headerID: strings.ToUpper(incoming), expectedID: incoming},
		{name: "replaces non uuid header", headerID: "incoming-id"},
		{name: "replaces markup header", headerID: "<script>alert(1)</script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.headerID != "" {
				req.Header.Set("X-Request-ID", tt.headerID)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
			_, err := uuid.Parse(seen)
			require.NoError(t, err)
			if tt.expectedID != "" {
				assert.Equal(t, tt.expectedID, seen)
			} else {
				assert.NotEqual(t, tt.headerID, seen)
			}
		})
	}
}

// fakeErrorRenderer records the last render call
type fakeErrorRenderer struct {
	err  error
	name string
	data any
}

func (f *fakeErrorRenderer) Render(w io.Writer, name string, data any) error {
	f.name = name
	f.data = data
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "<h2>error page</h2>")
	return err
}

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		renderer     *fakeErrorRenderer
		nilRenderer  bool
		expectedBody string
		expectedType string
		expectedLogs int
	}{
		{
			name:         "renders error page",
			renderer:     &fakeErrorRenderer{},
			expectedBody: "<h2>error page</h2>",
			expectedType: "text/html; charset=utf-8",
			expectedLogs: 1,
		},
		{
			name:         "falls back when rendering fails",
			renderer:     &fakeErrorRenderer{err: errors.New("template missing")},
			expectedBody: "Internal Server Error",
			expectedType: "text/plain; charset=utf-8",
			expectedLogs: 2,
		},
		{
			name:         "falls back without renderer",
			nilRenderer:  true,
			expectedBody: "Internal Server Error",
			expectedType: "text/plain; charset=utf-8",
			expectedLogs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			var renderer ErrorPageRenderer
			if !tt.nilRenderer {
				renderer = tt.renderer
			}
			handler := RequestIDMiddleware(RecoveryMiddleware(zap.New(core), renderer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("boom")
			})))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			assert.Equal(t, tt.expectedType, rec.Header().Get("Content-Type"))
			assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
			assert.Equal(t, tt.expectedLogs, logs.Len())

			if tt.renderer != nil {
				assert.Equal(t, "error", tt.renderer.name)
				data, ok := tt.renderer.data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, http.StatusInternalServerError, data["status_code"])
				assert.Equal(t, rec.Header().Get("X-Request-ID"), data["request_id"])
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(10)(okHandler)

	small := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, small)
	assert.Equal(t, http.StatusOK, rec.Code)

	large := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 100)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, large)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := RequestIDMiddleware(LoggerMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tourist/analysis?uid=1", nil))

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/tourist/analysis", fields["path"])
	assert.Equal(t, "uid=1", fields["query"])
	assert.Equal(t, "unmatched", fields["route"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestLoggerMiddleware_LevelAndRoute(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel zapcore.Level
	}{
		{name: "success", status: http.StatusOK, expectedLevel: zapcore.InfoLevel},
		{name: "redirect", status: http.StatusSeeOther, expectedLevel: zapcore.InfoLevel},
		{name: "client error", status: http.StatusBadRequest, expectedLevel: zapcore.WarnLevel},
		{name: "not found", status: http.StatusNotFound, expectedLevel: zapcore.WarnLevel},
		{name: "server error", status: http.StatusInternalServerError, expectedLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			r := chi.NewRouter()
			r.Use(LoggerMiddleware(zap.New(core)))
			r.Get("/feedback/{id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedback/7", nil))

			entries := logs.FilterMessage("HTTP request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.Equal(t, "/feedback/{id}", fields["route"])
			assert.Equal(t, "/feedback/7", fields["path"])
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/items/{id}", okHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// sessionRouter builds a router guarded the same way tourist and admin routes are
func sessionRouter(manager *session.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(SessionMiddleware(manager))
	r.Group(func(r chi.Router) {
		r.Use(RequireRole(models.RoleTourist, "/tourist/login"))
		r.Use(RequireOwner("uid", "/tourist/login"))
		r.Get("/tourist_dashboard", okHandler)
		r.Post("/tourist/submit_feedback", okHandler)
	})
	r.Group(func(r chi.Router) {
		r.Use(RequireRole(models.RoleAdmin, "/admin/login"))
		r.Get("/admin/dashboard", okHandler)
	})
	return r
}

func TestSessionGuards(t *testing.T) {
	manager := session.NewManager("secret", time.Hour, false)
	router := sessionRouter(manager)

	cookieFor := func(t *testing.T, userID int, role models.Role) *http.Cookie {
		t.Helper()
		token, err := manager.Issue(userID, role)
		require.NoError(t, err)
		return &http.Cookie{Name: session.CookieName, Value: token}
	}

	tests := []struct {
		name             string
		method           string
		target           string
		form             url.Values
		cookie           func(*testing.T) *http.Cookie
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:             "no session on tourist route",
			method:           http.MethodGet,
			target:           "/tourist_dashboard?uid=1",
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/tourist/login",
		},
		{
			name:           "owner session",
			method:         http.MethodGet,
			target:         "/tourist_dashboard?uid=1",
			cookie:         func(t *testing.T) *http.Cookie { return cookieFor(t, 1, models.RoleTourist) },
			expectedStatus: http.StatusOK,
		},
		{
			name:             "other user's dashboard",
			method:           http.MethodGet,
			target:           "/tourist_dashboard?uid=2",
			cookie:           func(t *testing.T) *http.Cookie { return cookieFor(t, 1, models.RoleTourist) },
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/tourist/login",
		},
		{
			name:           "owner form post",
			method:         http.MethodPost,
			target:         "/tourist/submit_feedback",
			form:           url.Values{"uid": {"4"}},
			cookie:         func(t *testing.T) *http.Cookie { return cookieFor(t, 4, models.RoleTourist) },
			expectedStatus: http.StatusOK,
		},
		{
			name:             "admin session on tourist route",
			method:           http.MethodGet,
			target:           "/tourist_dashboard?uid=1",
			cookie:           func(t *testing.T) *http.Cookie { return cookieFor(t, 1, models.RoleAdmin) },
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/tourist/login",
		},
		{
			name:             "tourist session on admin route",
			method:           http.MethodGet,
			target:           "/admin/dashboard",
			cookie:           func(t *testing.T) *http.Cookie { return cookieFor(t, 1, models.RoleTourist) },
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/admin/login",
		},
		{
			name:           "admin session on admin route",
			method:         http.MethodGet,
			target:         "/admin/dashboard",
			cookie:         func(t *testing.T) *http.Cookie { return cookieFor(t, 1, models.RoleAdmin) },
			expectedStatus: http.StatusOK,
		},
		{
			name:   "tampered cookie",
			method: http.MethodGet,
			target: "/admin/dashboard",
			cookie: func(t *testing.T) *http.Cookie {
				return &http.Cookie{Name: session.CookieName, Value: "forged"}
			},
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/admin/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.form != nil {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			if tt.cookie != nil {
				req.AddCookie(tt.cookie(t))
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rec.Header().Get("Location"))
			}
		})
	}
}
