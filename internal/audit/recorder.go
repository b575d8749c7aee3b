// Package audit writes login history records off the request path.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
	"shopadmin/internal/useragent"
)

// Entry is one successful authentication to be recorded
type Entry struct {
	UserID    uuid.UUID
	IPAddress string
	UserAgent string
	At        time.Time
}

// Recorder accepts entries on a buffered channel and persists them from a
// worker goroutine. A failed write is reported to operators but never
// escalated to the login caller.
type Recorder struct {
	repo repository.LoginHistoryRepository
	ch   chan Entry
	done chan struct{}
}

// NewRecorder creates a recorder and starts its worker
func NewRecorder(repo repository.LoginHistoryRepository, buffer int) *Recorder {
	r := &Recorder{
		repo: repo,
		ch:   make(chan Entry, buffer),
		done: make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues an entry without blocking. When the buffer is full the
// entry is dropped and the drop is logged.
func (r *Recorder) Record(e Entry) {
	select {
	case r.ch <- e:
	default:
		log.Printf("login history buffer full, dropping record for user %s", e.UserID)
	}
}

// Close stops accepting entries and drains the queue
func (r *Recorder) Close() {
	close(r.ch)
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)

	for e := range r.ch {
		r.write(e)
	}
}

func (r *Recorder) write(e Entry) {
	info := useragent.Parse(e.UserAgent)
	record := &models.LoginHistory{
		UserID:     e.UserID,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		DeviceType: info.Device,
		Browser:    info.Browser,
		Platform:   info.Platform,
		CreatedAt:  e.At,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.repo.Create(ctx, record); err != nil {
		log.Printf("Failed to create login history record: %v", err)
		sentry.CaptureException(err)
	}
}
