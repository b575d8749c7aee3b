package jobs

import (
	"context"
	"log"
	"time"

	"shopadmin/internal/repository"
)

// ConversationCleanupJob deletes conversations past the retention window
type ConversationCleanupJob struct {
	repo      repository.ConversationRepository
	retention time.Duration
	schedule  string
}

// NewConversationCleanupJob creates the daily conversation cleanup job
func NewConversationCleanupJob(repo repository.ConversationRepository, retention time.Duration, schedule string) *ConversationCleanupJob {
	return &ConversationCleanupJob{repo: repo, retention: retention, schedule: schedule}
}

func (j *ConversationCleanupJob) Name() string     { return "conversation-cleanup" }
func (j *ConversationCleanupJob) Schedule() string { return j.schedule }

func (j *ConversationCleanupJob) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.retention)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	log.Printf("conversation-cleanup removed %d conversations older than %s", deleted, cutoff.Format(time.RFC3339))
	return nil
}

// AttachmentCleanupJob deletes attachments whose conversation is gone
type AttachmentCleanupJob struct {
	repo     repository.AttachmentRepository
	schedule string
}

// NewAttachmentCleanupJob creates the weekly attachment cleanup job
func NewAttachmentCleanupJob(repo repository.AttachmentRepository, schedule string) *AttachmentCleanupJob {
	return &AttachmentCleanupJob{repo: repo, schedule: schedule}
}

func (j *AttachmentCleanupJob) Name() string     { return "attachment-cleanup" }
func (j *AttachmentCleanupJob) Schedule() string { return j.schedule }

func (j *AttachmentCleanupJob) Run(ctx context.Context) error {
	deleted, err := j.repo.DeleteOrphaned(ctx)
	if err != nil {
		return err
	}
	log.Printf("attachment-cleanup removed %d orphaned attachments", deleted)
	return nil
}
