package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an administrative account
type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Password    string     `json:"-"`
	DisplayName string     `json:"display_name"`
	Phone       *string    `json:"phone,omitempty"`
	Active      bool       `json:"active"`
	IsAdmin     bool       `json:"is_admin"`
	Roles       []Role     `json:"roles,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateUserRequest represents the request to create a new user
type CreateUserRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,max=72"`
	DisplayName string  `json:"display_name" binding:"required,max=100"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	IsAdmin     bool    `json:"is_admin"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Active      *bool   `json:"active,omitempty"`
}

// AssignRolesRequest represents the request to replace a user's role set
type AssignRolesRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids" binding:"required"`
}

// HasRole returns true if the user has the named role assigned
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
