package models

import (
	"time"

	"github.com/google/uuid"
)

// Permission is a named, atomic authorization unit (e.g. "users.view").
// Permission names are globally unique.
type Permission struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Role represents a named bundle of permissions assignable to users
type Role struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	IsProtected bool         `json:"is_protected"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CreateRoleRequest represents the request to create a new role
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50,nospaces"`
	IsProtected bool   `json:"is_protected"`
}

// UpdateRoleRequest represents the request to update a role
type UpdateRoleRequest struct {
	Name string `json:"name" binding:"required,min=3,max=50,nospaces"`
}

// SetRolePermissionsRequest replaces the full permission set of a role
type SetRolePermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permission_ids" binding:"required"`
}
