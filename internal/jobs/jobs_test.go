package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shopadmin/internal/models"
)

type fakeConversationRepo struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (r *fakeConversationRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	return r.deleted, r.err
}

type fakeAttachmentRepo struct {
	calls int
	err   error
}

func (r *fakeAttachmentRepo) DeleteOrphaned(_ context.Context) (int64, error) {
	r.calls++
	return 0, r.err
}

type fakeSnapshotRepo struct {
	periods []string
	err     error
}

func (r *fakeSnapshotRepo) CreateSnapshot(_ context.Context, period string, takenAt time.Time) (*models.InventorySnapshot, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.periods = append(r.periods, period)
	return &models.InventorySnapshot{Period: period, TakenAt: takenAt}, nil
}

func (r *fakeSnapshotRepo) List(_ context.Context, _ string, _ int) ([]models.InventorySnapshot, error) {
	return nil, nil
}

func TestManagerRunJob(t *testing.T) {
	m := NewManager()
	repo := &fakeAttachmentRepo{}
	m.Register(NewAttachmentCleanupJob(repo, "0 3 * * 0"))

	require.NoError(t, m.RunJob(context.Background(), "attachment-cleanup"))
	require.Equal(t, 1, repo.calls)
}

func TestManagerRunJobUnknown(t *testing.T) {
	m := NewManager()
	err := m.RunJob(context.Background(), "no-such-job")
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestManagerRunJobPropagatesError(t *testing.T) {
	m := NewManager()
	repo := &fakeAttachmentRepo{err: errors.New("db down")}
	m.Register(NewAttachmentCleanupJob(repo, "0 3 * * 0"))

	err := m.RunJob(context.Background(), "attachment-cleanup")
	require.EqualError(t, err, "db down")
}

func TestManagerGet(t *testing.T) {
	m := NewManager()
	m.Register(NewSnapshotJob(&fakeSnapshotRepo{}, "daily", "5 0 * * *"))

	job, found := m.Get("inventory-snapshot-daily")
	require.True(t, found)
	require.Equal(t, "5 0 * * *", job.Schedule())

	_, found = m.Get("inventory-snapshot-weekly")
	require.False(t, found)
}

func TestConversationCleanupCutoff(t *testing.T) {
	repo := &fakeConversationRepo{deleted: 7}
	job := NewConversationCleanupJob(repo, 90*24*time.Hour, "0 1 * * *")

	require.Equal(t, "conversation-cleanup", job.Name())
	require.NoError(t, job.Run(context.Background()))

	expected := time.Now().Add(-90 * 24 * time.Hour)
	require.WithinDuration(t, expected, repo.cutoff, time.Minute)
}

func TestSnapshotJobPeriods(t *testing.T) {
	repo := &fakeSnapshotRepo{}
	ctx := context.Background()

	for _, period := range []string{"daily", "monthly", "yearly"} {
		job := NewSnapshotJob(repo, period, "5 0 * * *")
		require.Equal(t, "inventory-snapshot-"+period, job.Name())
		require.NoError(t, job.Run(ctx))
	}
	require.Equal(t, []string{"daily", "monthly", "yearly"}, repo.periods)
}

// The scheduler must accept every default schedule expression.
func TestSchedulerAcceptsDefaultSchedules(t *testing.T) {
	m := NewManager()
	m.Register(NewConversationCleanupJob(&fakeConversationRepo{}, 90*24*time.Hour, "0 1 * * *"))
	m.Register(NewAttachmentCleanupJob(&fakeAttachmentRepo{}, "0 3 * * 0"))
	snapRepo := &fakeSnapshotRepo{}
	m.Register(NewSnapshotJob(snapRepo, "daily", "5 0 * * *"))
	m.Register(NewSnapshotJob(snapRepo, "monthly", "15 0 1 * *"))
	m.Register(NewSnapshotJob(snapRepo, "yearly", "30 0 1 1 *"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.StartScheduler(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}
}
