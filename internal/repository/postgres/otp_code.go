package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

type otpCodeRepository struct {
	repository.BaseRepository
}

// NewOTPCodeRepository creates a new PostgreSQL OTP code repository
func NewOTPCodeRepository(db *sql.DB) repository.OTPCodeRepository {
	return &otpCodeRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *otpCodeRepository) Create(ctx context.Context, code *models.OTPCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO otp_codes (id, key, code_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB().ExecContext(ctx, query,
		code.ID, code.Key, code.CodeHash, code.ExpiresAt, code.CreatedAt,
	)
	return err
}

func (r *otpCodeRepository) GetActiveByKey(ctx context.Context, key string) (*models.OTPCode, error) {
	query := `
		SELECT id, key, code_hash, expires_at, consumed_at, created_at
		FROM otp_codes
		WHERE key = $1 AND consumed_at IS NULL AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`

	var code models.OTPCode
	err := r.DB().QueryRowContext(ctx, query, key, time.Now()).Scan(
		&code.ID, &code.Key, &code.CodeHash, &code.ExpiresAt, &code.ConsumedAt, &code.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *otpCodeRepository) MarkConsumed(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE otp_codes SET consumed_at = $1 WHERE id = $2 AND consumed_at IS NULL`,
		time.Now(), id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrCodeNotFound
	}
	return nil
}

func (r *otpCodeRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM otp_codes WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
