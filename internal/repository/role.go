package repository

import (
	"context"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// RoleRepository provides access to roles and their permission sets
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetPermissions(ctx context.Context, roleID uuid.UUID) ([]models.Permission, error)
	SetPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	ListPermissions(ctx context.Context) ([]models.Permission, error)

	// GetPermissionNamesForUser returns the union of permission names across
	// all roles assigned to the user.
	GetPermissionNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
