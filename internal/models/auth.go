package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest represents interactive login credentials
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,email" example:"admin@example.com"`
	Password   string `json:"password" binding:"required" example:"mypassword123"`
	Remember   bool   `json:"remember"`
}

// LoginResponse represents the response to a successful login
type LoginResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	RefreshToken string `json:"refresh_token" example:"dG9rZW4uLi4="`
	RedirectTo   string `json:"redirect_to" example:"/"`
}

// RefreshRequest represents the request to refresh an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse represents the response after refreshing an access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// OTPRequest asks for a one-time password to be sent out-of-band
type OTPRequest struct {
	Phone string `json:"phone" binding:"required,max=20,phone" example:"+46 70 123 45 67"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"omitempty,max=100"`
}

// OTPVerifyRequest submits a previously issued one-time password
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required,max=20,phone"`
	Code  string `json:"code" binding:"required,len=6"`
}

// RefreshToken is an opaque, persisted session continuation token
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
