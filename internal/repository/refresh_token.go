package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// RefreshTokenRepository stores opaque session continuation tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
