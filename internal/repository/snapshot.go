package repository

import (
	"context"
	"time"

	"shopadmin/internal/models"
)

// SnapshotRepository writes inventory snapshot aggregates
type SnapshotRepository interface {
	// CreateSnapshot aggregates the current product inventory into a new
	// snapshot row for the given period.
	CreateSnapshot(ctx context.Context, period string, takenAt time.Time) (*models.InventorySnapshot, error)
	List(ctx context.Context, period string, limit int) ([]models.InventorySnapshot, error)
}
