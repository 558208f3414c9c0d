package scheduler

import (
	"time"

	"go.uber.org/zap"

	"github.com/rroosshhaann/whisper-diarization/internal/app/common"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// DefaultJobTTL is how long a terminal job stays queryable
const DefaultJobTTL = time.Hour

// FileRemover deletes a job's backing file, ignoring files that are already gone
type FileRemover interface {
	Remove(path string) error
}

// Collector sweeps terminal jobs whose age exceeds the TTL
type Collector struct {
	registry *Registry
	files    FileRemover
	ttl      time.Duration
	now      func() time.Time
	metrics  *Metrics
	logger   *zap.Logger
}

// NewCollector creates a garbage collector over registry
func NewCollector(registry *Registry, files FileRemover, ttl time.Duration, metrics *Metrics, logger *zap.Logger) *Collector {
	if ttl <= 0 {
		ttl = DefaultJobTTL
	}
	return &Collector{
		registry: registry,
		files:    files,
		ttl:      ttl,
		now:      time.Now,
		metrics:  metrics,
		logger:   logger,
	}
}

// Sweep removes expired terminal jobs and any leftover file, returning how many were removed.
// Age is measured from CreatedAt, so every job that has been terminal for longer than
// the TTL is necessarily included.
func (c *Collector) Sweep() int {
	cutoff := c.now().Add(-c.ttl)

	expired := c.registry.RemoveWhere(func(job *model.Job) bool {
		return job.Status.IsTerminal() && job.CreatedAt.Before(cutoff)
	})

	for _, job := range expired {
		if err := c.files.Remove(job.AudioPath); err != nil {
			c.logger.Warn("failed to remove expired job audio",
				common.JobFields(job.ID, zap.String("path", job.AudioPath), zap.Error(err))...)
		}
		c.logger.Debug("expired job removed", common.JobFields(job.ID, zap.String("status", string(job.Status)))...)
	}

	c.metrics.jobsCollected(len(expired))
	return len(expired)
}
