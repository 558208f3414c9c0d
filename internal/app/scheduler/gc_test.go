package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
}

func (r *recordingRemover) Remove(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, path)
	return nil
}

func TestCollectorSweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry := NewRegistry()

	insert := func(id string, status model.JobStatus, age time.Duration) {
		job := model.NewJob(id, "/uploads/"+id+".wav", model.DefaultJobOptions(), now.Add(-age))
		job.Status = status
		require.NoError(t, registry.Insert(job))
	}
	insert("old-completed", model.JobStatusCompleted, 2*time.Hour)
	insert("old-failed", model.JobStatusFailed, 61*time.Minute)
	insert("old-queued", model.JobStatusQueued, 3*time.Hour)
	insert("old-processing", model.JobStatusProcessing, 3*time.Hour)
	insert("fresh-completed", model.JobStatusCompleted, 10*time.Minute)

	files := &recordingRemover{}
	metrics := NewMetrics(prometheus.NewRegistry())
	collector := NewCollector(registry, files, time.Hour, metrics, zaptest.NewLogger(t))
	collector.now = func() time.Time { return now }

	assert.Equal(t, 2, collector.Sweep())
	assert.Equal(t, []string{"/uploads/old-completed.wav", "/uploads/old-failed.wav"}, files.removed)
	assert.Equal(t, 2.0, promtest.ToFloat64(metrics.collected))

	remaining := registry.List(nil)
	ids := make([]string, len(remaining))
	for i, job := range remaining {
		ids[i] = job.ID
	}
	assert.Equal(t, []string{"old-queued", "old-processing", "fresh-completed"}, ids)

	assert.Zero(t, collector.Sweep())
}

func TestCollectorDefaultTTL(t *testing.T) {
	collector := NewCollector(NewRegistry(), &recordingRemover{}, 0, nil, zaptest.NewLogger(t))
	assert.Equal(t, DefaultJobTTL, collector.ttl)
}
