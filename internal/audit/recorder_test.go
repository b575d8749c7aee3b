package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/models"
	"shopadmin/internal/testutil"
)

func TestRecorderWritesEntry(t *testing.T) {
	repo := testutil.NewFakeLoginHistoryRepository()
	recorder := NewRecorder(repo, 16)
	defer recorder.Close()

	userID := uuid.New()
	at := time.Now()
	recorder.Record(Entry{
		UserID:    userID,
		IPAddress: "192.0.2.1",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0 Safari/537.36",
		At:        at,
	})

	select {
	case record := <-repo.Created:
		require.Equal(t, userID, record.UserID)
		require.Equal(t, "192.0.2.1", record.IPAddress)
		require.Equal(t, models.DeviceDesktop, record.DeviceType)
		require.Equal(t, "Chrome", record.Browser)
		require.Equal(t, "Windows", record.Platform)
		require.Equal(t, at, record.CreatedAt)
	case <-time.After(2 * time.Second):
		t.Fatal("record was never written")
	}
}

func TestRecorderCloseDrainsQueue(t *testing.T) {
	repo := testutil.NewFakeLoginHistoryRepository()
	recorder := NewRecorder(repo, 16)

	for i := 0; i < 5; i++ {
		recorder.Record(Entry{UserID: uuid.New(), At: time.Now()})
	}
	recorder.Close()

	require.Len(t, repo.Created, 5)
}

// A failing write must not panic or stop the worker; subsequent entries still
// go through once the store recovers.
func TestRecorderSurvivesWriteFailure(t *testing.T) {
	repo := testutil.NewFakeLoginHistoryRepository()
	repo.SetCreateErr(errors.New("connection refused"))
	recorder := NewRecorder(repo, 16)
	defer recorder.Close()

	recorder.Record(Entry{UserID: uuid.New(), At: time.Now()})

	// Let the worker hit the failure, then recover the store
	time.Sleep(50 * time.Millisecond)
	repo.SetCreateErr(nil)

	recorder.Record(Entry{UserID: uuid.New(), At: time.Now()})

	select {
	case <-repo.Created:
	case <-time.After(2 * time.Second):
		t.Fatal("recorder stopped writing after a failure")
	}
}

// Record never blocks the caller, even with a full buffer and no worker
// keeping up.
func TestRecorderDoesNotBlockWhenFull(t *testing.T) {
	repo := testutil.NewFakeLoginHistoryRepository()
	repo.SetCreateErr(errors.New("wedged"))
	recorder := NewRecorder(repo, 1)
	defer recorder.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			recorder.Record(Entry{UserID: uuid.New(), At: time.Now()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full buffer")
	}
}
