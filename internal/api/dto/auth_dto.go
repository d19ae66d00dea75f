package dto

import "github.com/spec-kit/kclean/internal/domain"

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for POST /register.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string         `json:"token"`
	User  domain.Subject `json:"user"`
}

// MessageResponse carries a human-readable status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the backend's failure body.
type ErrorResponse struct {
	Message string `json:"message"`
}
