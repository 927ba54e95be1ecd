package models

// Role represents the access class of a user
type Role string

// UserRole constants
const (
	RoleTourist Role = "tourist"
	RoleAdmin   Role = "admin"
)

// User represents a registered user
type User struct {
	ID           int    `json:"id"`
	Fullname     string `json:"fullname"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Role         Role   `json:"role"`
}

// RegisterRequest represents the registration form
type RegisterRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
