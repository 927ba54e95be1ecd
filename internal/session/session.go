// Package session issues and validates signed session tokens carried in a cookie
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/touristfeedback/backend/internal/models"
)

// CookieName is the name of the cookie holding the session token
const CookieName = "session"

// Claims is the identity carried by a valid session
type Claims struct {
	UserID int
	Role   models.Role
}

// Manager handles session token generation and validation
type Manager struct {
	secret       string
	ttl          time.Duration
	cookieSecure bool
}

// NewManager creates a new session manager
func NewManager(secret string, ttl time.Duration, cookieSecure bool) *Manager {
	return &Manager{
		secret:       secret,
		ttl:          ttl,
		cookieSecure: cookieSecure,
	}
}

// Issue creates a signed session token with userID and role in payload
func (m *Manager) Issue(userID int, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(m.ttl).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "session",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Validate validates a session token and returns its claims
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "session" {
		return nil, fmt.Errorf("token is not a session token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("user_id not found in token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("role not found in token")
	}

	return &Claims{UserID: int(userID), Role: models.Role(role)}, nil
}

// SetCookie issues a session for the user and stores it as an HTTP-only cookie
func (m *Manager) SetCookie(w http.ResponseWriter, userID int, role models.Role) error {
	token, err := m.Issue(userID, role)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the claims of the session cookie attached to the request
func (m *Manager) FromRequest(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, fmt.Errorf("session cookie not found: %w", err)
	}
	return m.Validate(cookie.Value)
}
