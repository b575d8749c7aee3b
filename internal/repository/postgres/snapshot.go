package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

type snapshotRepository struct {
	repository.BaseRepository
}

// NewSnapshotRepository creates a new PostgreSQL inventory snapshot repository
func NewSnapshotRepository(db *sql.DB) repository.SnapshotRepository {
	return &snapshotRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

// CreateSnapshot aggregates the products table into a single snapshot row.
// The aggregate and the insert run as one statement so the snapshot is
// consistent without an explicit transaction.
func (r *snapshotRepository) CreateSnapshot(ctx context.Context, period string, takenAt time.Time) (*models.InventorySnapshot, error) {
	query := `
		INSERT INTO inventory_snapshots (id, period, product_count, total_quantity, total_value, taken_at)
		SELECT $1, $2,
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(quantity * unit_price), 0),
			$3
		FROM products
		RETURNING id, period, product_count, total_quantity, total_value, taken_at`

	var s models.InventorySnapshot
	err := r.DB().QueryRowContext(ctx, query, uuid.New(), period, takenAt).Scan(
		&s.ID, &s.Period, &s.ProductCount, &s.TotalQuantity, &s.TotalValue, &s.TakenAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *snapshotRepository) List(ctx context.Context, period string, limit int) ([]models.InventorySnapshot, error) {
	query := `
		SELECT id, period, product_count, total_quantity, total_value, taken_at
		FROM inventory_snapshots
		WHERE period = $1
		ORDER BY taken_at DESC
		LIMIT $2`

	rows, err := r.DB().QueryContext(ctx, query, period, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.InventorySnapshot
	for rows.Next() {
		var s models.InventorySnapshot
		if err := rows.Scan(&s.ID, &s.Period, &s.ProductCount, &s.TotalQuantity, &s.TotalValue, &s.TakenAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
