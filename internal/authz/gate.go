// Package authz answers whether a user holds a named permission.
package authz

import (
	"context"

	"github.com/google/uuid"

	"shopadmin/internal/repository"
)

// Gate checks permission membership. A user's effective permission set is the
// union of the permissions across all of their assigned roles.
type Gate struct {
	roleRepo repository.RoleRepository
}

// NewGate creates a permission gate
func NewGate(roleRepo repository.RoleRepository) *Gate {
	return &Gate{roleRepo: roleRepo}
}

// Check reports whether the user holds the named permission
func (g *Gate) Check(ctx context.Context, userID uuid.UUID, permission string) (bool, error) {
	names, err := g.roleRepo.GetPermissionNamesForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == permission {
			return true, nil
		}
	}
	return false, nil
}
