package models

import "errors"

// Domain errors shared by repositories, services and handlers
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
