package repository

import (
	"context"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// OTPCodeRepository stores hashes of issued one-time passwords
type OTPCodeRepository interface {
	Create(ctx context.Context, code *models.OTPCode) error
	// GetActiveByKey returns the newest unconsumed, unexpired code for key.
	GetActiveByKey(ctx context.Context, key string) (*models.OTPCode, error)
	MarkConsumed(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
