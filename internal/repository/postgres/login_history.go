package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

type loginHistoryRepository struct {
	repository.BaseRepository
}

// NewLoginHistoryRepository creates a new PostgreSQL login history repository
func NewLoginHistoryRepository(db *sql.DB) repository.LoginHistoryRepository {
	return &loginHistoryRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *loginHistoryRepository) Create(ctx context.Context, record *models.LoginHistory) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO login_history (id, user_id, ip_address, user_agent, device_type, browser, platform, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB().ExecContext(ctx, query,
		record.ID, record.UserID, record.IPAddress, record.UserAgent,
		record.DeviceType, record.Browser, record.Platform, record.CreatedAt,
	)
	return err
}

func (r *loginHistoryRepository) List(ctx context.Context, filter repository.LoginHistoryFilter) ([]models.LoginHistory, error) {
	var conditions []string
	var params []interface{}
	paramCount := 1

	query := `
		SELECT id, user_id, ip_address, user_agent, device_type, browser, platform, created_at
		FROM login_history`

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", paramCount))
		params = append(params, *filter.UserID)
		paramCount++
	}
	if filter.DeviceType != nil {
		conditions = append(conditions, fmt.Sprintf("device_type = $%d", paramCount))
		params = append(params, *filter.DeviceType)
		paramCount++
	}
	if filter.CreatedAfter != nil {
		conditions = append(conditions, fmt.Sprintf("created_at > $%d", paramCount))
		params = append(params, *filter.CreatedAfter)
		paramCount++
	}
	if filter.CreatedBefore != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", paramCount))
		params = append(params, *filter.CreatedBefore)
		paramCount++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", paramCount)
		params = append(params, *filter.Limit)
		paramCount++
	}
	if filter.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", paramCount)
		params = append(params, *filter.Offset)
	}

	rows, err := r.DB().QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.LoginHistory
	for rows.Next() {
		var rec models.LoginHistory
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.IPAddress, &rec.UserAgent,
			&rec.DeviceType, &rec.Browser, &rec.Platform, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
