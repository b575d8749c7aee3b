package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// UserFilter narrows user listings
type UserFilter struct {
	Email  *string
	Active *bool
	Limit  *int
	Offset *int
}

// UserRepository provides access to user accounts. The authentication pipeline
// only reads from it; writes happen through the management operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	AssignRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error
	GetRoles(ctx context.Context, userID uuid.UUID) ([]models.Role, error)
}
