package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// LoginHistoryFilter narrows login history listings
type LoginHistoryFilter struct {
	UserID        *uuid.UUID
	DeviceType    *models.DeviceType
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         *int
	Offset        *int
}

// LoginHistoryRepository stores the append-only login audit trail
type LoginHistoryRepository interface {
	Create(ctx context.Context, record *models.LoginHistory) error
	List(ctx context.Context, filter LoginHistoryFilter) ([]models.LoginHistory, error)
}
