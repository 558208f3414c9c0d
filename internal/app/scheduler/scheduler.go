package scheduler

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rroosshhaann/whisper-diarization/internal/app/common"
	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// AudioStore persists uploaded audio until its job finishes
type AudioStore interface {
	FileRemover
	Save(jobID, filename string, content io.Reader) (string, error)
}

// Config tunes the scheduler
type Config struct {
	JobTTL time.Duration
	// Registerer receives the scheduler metrics; nil disables registration
	Registerer prometheus.Registerer
}

// Snapshot is the externally visible state of a job
type Snapshot struct {
	JobID    string
	Status   model.JobStatus
	Position int // queue position, -1 unless queued
	Progress model.Stage
	Error    string
}

// Health summarizes the queue
type Health struct {
	Queued     int
	Processing int
}

// Scheduler owns the registry, the queue and the single worker
type Scheduler struct {
	registry  *Registry
	queue     *Queue
	store     AudioStore
	worker    *Worker
	collector *Collector
	metrics   *Metrics
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	// mu also serializes submissions, so registry order matches queue order and
	// no job is enqueued once stopped is set
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// New creates a scheduler; call Start to begin processing
func New(cfg Config, store AudioStore, runner Runner, logger *zap.Logger) *Scheduler {
	registry := NewRegistry()
	queue := NewQueue()
	metrics := NewMetrics(cfg.Registerer)
	metrics.RegisterGauges(cfg.Registerer, registry)
	collector := NewCollector(registry, store, cfg.JobTTL, metrics, logger)

	return &Scheduler{
		registry:  registry,
		queue:     queue,
		store:     store,
		collector: collector,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
		worker: &Worker{
			registry:  registry,
			queue:     queue,
			runner:    runner,
			files:     store,
			collector: collector,
			metrics:   metrics,
			logger:    logger,
			now:       time.Now,
		},
	}
}

// Start launches the worker goroutine. Calling it twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil || s.stopped {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		s.worker.Loop(ctx)
	}(s.done)
}

// Stop prevents new submissions and waits for the in-flight job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Submit stores the audio, registers a queued job and enqueues it
func (s *Scheduler) Submit(filename string, audio io.Reader, opts model.JobOptions) (*Snapshot, error) {
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return nil, apperrors.ErrSchedulerStopped
	}

	id := s.newID()
	path, err := s.store.Save(id, filename, audio)
	if err != nil {
		return nil, err
	}

	if err := s.enqueue(model.NewJob(id, path, opts, s.now())); err != nil {
		_ = s.store.Remove(path)
		return nil, err
	}
	s.metrics.jobSubmitted()

	s.logger.Info("job queued", common.JobFields(id, zap.String("filename", filename))...)
	return s.Status(id)
}

// enqueue registers job and queues its id, unless Stop has begun
func (s *Scheduler) enqueue(job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return apperrors.ErrSchedulerStopped
	}
	if err := s.registry.Insert(job); err != nil {
		return err
	}
	s.queue.Enqueue(job.ID)
	return nil
}

// Status reports a job's status with its queue position or current stage
func (s *Scheduler) Status(id string) (*Snapshot, error) {
	job, position, err := s.registry.Snapshot(id)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		JobID:    job.ID,
		Status:   job.Status,
		Position: -1,
	}
	switch job.Status {
	case model.JobStatusQueued:
		snapshot.Position = position
	case model.JobStatusProcessing:
		snapshot.Progress = job.Progress
	case model.JobStatusFailed:
		snapshot.Error = job.Error
	}
	return snapshot, nil
}

// Result returns the job once completed. Queued and processing jobs yield
// ErrStillQueued / ErrStillProcessing; failed jobs yield ErrJobFailed with the job
// snapshot carrying the failure message.
func (s *Scheduler) Result(id string) (*model.Job, error) {
	job, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}

	switch job.Status {
	case model.JobStatusQueued:
		return job, apperrors.ErrStillQueued
	case model.JobStatusProcessing:
		return job, apperrors.ErrStillProcessing
	case model.JobStatusFailed:
		return job, apperrors.ErrJobFailed
	}
	return job, nil
}

// Delete removes a job that is not processing, together with its audio
func (s *Scheduler) Delete(id string) error {
	job, err := s.registry.RemoveIf(id, func(job *model.Job) error {
		if job.Status == model.JobStatusProcessing {
			return apperrors.Wrapf(apperrors.ErrJobProcessing, "job %s", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.store.Remove(job.AudioPath); err != nil {
		s.logger.Warn("failed to remove deleted job audio",
			common.JobFields(id, zap.String("path", job.AudioPath), zap.Error(err))...)
	}
	s.logger.Info("job deleted", common.JobFields(id, zap.String("status", string(job.Status)))...)
	return nil
}

// Health counts queued and processing jobs
func (s *Scheduler) Health() Health {
	return Health{
		Queued:     s.registry.Count(hasStatus(model.JobStatusQueued)),
		Processing: s.registry.Count(hasStatus(model.JobStatusProcessing)),
	}
}

// Jobs lists job snapshots in submission order
func (s *Scheduler) Jobs() []*model.Job {
	return s.registry.List(nil)
}
