package dto

import "time"

// RegisterRequest entrada para registro: email y password.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// IdentityResponse identidad creada (sin password).
type IdentityResponse struct {
	Principal string    `json:"principal"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión e identidad.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Identity  IdentityResponse `json:"identity"`
}

// LoginStatusResponse estado del último intento de login de un email.
type LoginStatusResponse struct {
	Status string `json:"status"` // idle | logging-in | success | loginError
	Error  string `json:"error,omitempty"`
}
