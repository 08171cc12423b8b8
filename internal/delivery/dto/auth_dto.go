package dto

import "time"

// Request DTOs

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is built from form-encoded credentials.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=admin student instructor"`
}

// Response DTOs

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *UserResponse `json:"user"`
}
