// Package jobs schedules and runs the periodic maintenance and snapshot jobs.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// ErrJobNotFound is returned when a named job is not registered
var ErrJobNotFound = errors.New("job not found")

// Job is a named, independently invocable unit of scheduled work
type Job interface {
	// Name returns the unique name of the job
	Name() string
	// Schedule returns the job's cron expression
	Schedule() string
	// Run executes the job
	Run(ctx context.Context) error
}

// Manager handles registration, scheduling and manual execution of jobs
type Manager struct {
	jobs []Job
	cron *cron.Cron
}

// NewManager creates a job manager with a standard five-field cron parser
func NewManager() *Manager {
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	return &Manager{
		jobs: make([]Job, 0),
		cron: c,
	}
}

// Register adds a job to the manager
func (m *Manager) Register(j Job) {
	m.jobs = append(m.jobs, j)
}

// Jobs returns all registered jobs
func (m *Manager) Jobs() []Job {
	return m.jobs
}

// Get returns a job by name
func (m *Manager) Get(name string) (Job, bool) {
	for _, j := range m.jobs {
		if j.Name() == name {
			return j, true
		}
	}
	return nil, false
}

// RunJob executes a specific job by name, outside its schedule
func (m *Manager) RunJob(ctx context.Context, name string) error {
	job, found := m.Get(name)
	if !found {
		return ErrJobNotFound
	}
	return job.Run(ctx)
}

// StartScheduler registers every job with the cron scheduler and blocks until
// the context is cancelled.
func (m *Manager) StartScheduler(ctx context.Context) error {
	for _, j := range m.jobs {
		job := j
		_, err := m.cron.AddFunc(job.Schedule(), func() {
			log.Printf("Running scheduled job %s", job.Name())
			if err := job.Run(ctx); err != nil {
				log.Printf("Error running job %s: %v", job.Name(), err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
		}
		log.Printf("Scheduled job %s with schedule %q", job.Name(), job.Schedule())
	}

	m.cron.Start()
	log.Println("Job scheduler started")

	<-ctx.Done()
	log.Println("Stopping job scheduler...")
	m.cron.Stop()

	return nil
}
