package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touristfeedback/backend/internal/models"
)

func TestNewManager(t *testing.T) {
	m := NewManager("secret", time.Hour, true)

	assert.NotNil(t, m)
	assert.Equal(t, "secret", m.secret)
	assert.Equal(t, time.Hour, m.ttl)
	assert.True(t, m.cookieSecure)
}

func TestManager_IssueAndValidate(t *testing.T) {
	m := NewManager("b8a3c2267dc85f855dea9b46b452bf20", time.Hour, false)

	tests := []struct {
		name   string
		userID int
		role   models.Role
	}{
		{name: "tourist", userID: 7, role: models.RoleTourist},
		{name: "admin", userID: 1, role: models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := m.Issue(tt.userID, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Len(t, strings.Split(token, "."), 3)

			claims, err := m.Validate(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.role, claims.Role)
		})
	}
}

func TestManager_Validate(t *testing.T) {
	secret := "test-secret"
	m := NewManager(secret, time.Hour, false)

	sign := func(t *testing.T, claims jwt.MapClaims, key string) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name          string
		token         func(*testing.T) string
		errorContains string
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return sign(t, jwt.MapClaims{
					"user_id": 1, "role": "tourist", "type": "session",
					"exp": time.Now().Add(-time.Minute).Unix(),
				}, secret)
			},
			errorContains: "failed to parse token",
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.MapClaims{
					"user_id": 1, "role": "tourist", "type": "session",
					"exp": time.Now().Add(time.Minute).Unix(),
				}, "other-secret")
			},
			errorContains: "failed to parse token",
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				return sign(t, jwt.MapClaims{
					"user_id": 1, "role": "tourist", "type": "refresh",
					"exp": time.Now().Add(time.Minute).Unix(),
				}, secret)
			},
			errorContains: "not a session token",
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				return sign(t, jwt.MapClaims{
					"role": "tourist", "type": "session",
					"exp": time.Now().Add(time.Minute).Unix(),
				}, secret)
			},
			errorContains: "user_id not found",
		},
		{
			name: "missing role",
			token: func(t *testing.T) string {
				return sign(t, jwt.MapClaims{
					"user_id": 1, "type": "session",
					"exp": time.Now().Add(time.Minute).Unix(),
				}, secret)
			},
			errorContains: "role not found",
		},
		{
			name:          "garbage",
			token:         func(t *testing.T) string { return "not.a.token" },
			errorContains: "failed to parse token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := m.Validate(tt.token(t))

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Nil(t, claims)
		})
	}
}

func TestManager_Cookies(t *testing.T) {
	m := NewManager("secret", time.Hour, true)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetCookie(rec, 3, models.RoleTourist))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	claims, err := m.FromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, models.RoleTourist, claims.Role)

	clearRec := httptest.NewRecorder()
	m.ClearCookie(clearRec)
	cleared := clearRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestManager_FromRequest_NoCookie(t *testing.T) {
	m := NewManager("secret", time.Hour, false)

	claims, err := m.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Error(t, err)
	assert.Nil(t, claims)
}
