package postgres

import (
	"context"
	"database/sql"
	"time"

	"shopadmin/internal/repository"
)

type conversationRepository struct {
	repository.BaseRepository
}

// NewConversationRepository creates a new PostgreSQL conversation repository
func NewConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &conversationRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *conversationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.DB().ExecContext(ctx,
		`DELETE FROM conversations WHERE updated_at < $1`, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type attachmentRepository struct {
	repository.BaseRepository
}

// NewAttachmentRepository creates a new PostgreSQL attachment repository
func NewAttachmentRepository(db *sql.DB) repository.AttachmentRepository {
	return &attachmentRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

// DeleteOrphaned removes attachments whose conversation no longer exists
func (r *attachmentRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM attachments a
		WHERE NOT EXISTS (
			SELECT 1 FROM conversations c WHERE c.id = a.conversation_id
		)`

	result, err := r.DB().ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
