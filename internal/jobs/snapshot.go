package jobs

import (
	"context"
	"log"
	"time"

	"shopadmin/internal/repository"
)

// SnapshotJob writes an inventory snapshot aggregate for its period
type SnapshotJob struct {
	repo     repository.SnapshotRepository
	period   string
	schedule string
}

// NewSnapshotJob creates an inventory snapshot job for the given period
// (daily, monthly or yearly).
func NewSnapshotJob(repo repository.SnapshotRepository, period, schedule string) *SnapshotJob {
	return &SnapshotJob{repo: repo, period: period, schedule: schedule}
}

func (j *SnapshotJob) Name() string     { return "inventory-snapshot-" + j.period }
func (j *SnapshotJob) Schedule() string { return j.schedule }

func (j *SnapshotJob) Run(ctx context.Context) error {
	snapshot, err := j.repo.CreateSnapshot(ctx, j.period, time.Now())
	if err != nil {
		return err
	}
	log.Printf("%s recorded %d products, total quantity %d", j.Name(), snapshot.ProductCount, snapshot.TotalQuantity)
	return nil
}
