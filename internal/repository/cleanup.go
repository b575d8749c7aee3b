package repository

import (
	"context"
	"time"
)

// ConversationRepository exposes the retention cleanup used by the scheduled jobs
type ConversationRepository interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AttachmentRepository exposes the orphan cleanup used by the scheduled jobs
type AttachmentRepository interface {
	DeleteOrphaned(ctx context.Context) (int64, error)
}
