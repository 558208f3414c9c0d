package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rroosshhaann/whisper-diarization/internal/app/common"
	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
)

// Runner executes the inference pipeline for one job
type Runner interface {
	Run(ctx context.Context, audioPath string, opts model.JobOptions, sink pipeline.ProgressSink) pipeline.Outcome
}

// Worker is the single consumer binding the queue to the pipeline.
// Only one job is ever processed at a time.
type Worker struct {
	registry  *Registry
	queue     *Queue
	runner    Runner
	files     FileRemover
	collector *Collector
	metrics   *Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// Loop consumes ids until ctx is cancelled. A job already running when ctx is
// cancelled is finished first.
func (w *Worker) Loop(ctx context.Context) {
	w.logger.Info("worker started")
	defer w.logger.Info("worker stopped")

	for {
		id, err := w.queue.Dequeue(ctx)
		if err != nil {
			return
		}
		w.process(context.WithoutCancel(ctx), id)
	}
}

func (w *Worker) process(ctx context.Context, id string) {
	started := w.now()
	job, err := w.registry.Update(id, func(job *model.Job) error {
		if !job.Status.CanTransitionTo(model.JobStatusProcessing) {
			return apperrors.Wrapf(apperrors.ErrInvalidTransition, "%s -> %s", job.Status, model.JobStatusProcessing)
		}
		job.Status = model.JobStatusProcessing
		job.StartedAt = &started
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrJobNotFound) {
			// deleted while waiting in the queue
			w.metrics.jobSkipped()
			w.logger.Debug("skipping deleted job", common.JobFields(id)...)
			return
		}
		w.logger.Warn("cannot start job", common.JobFields(id, zap.Error(err))...)
		return
	}

	w.logger.Info("processing job", common.JobFields(id,
		zap.String("model", job.Options.ModelName),
		zap.Bool("stemming", job.Options.Stemming),
		zap.Int("batch_size", job.Options.BatchSize))...)

	outcome := w.execute(ctx, job)
	w.finish(id, outcome, started)
	w.collector.Sweep()
}

// execute runs the pipeline and always removes the job's audio before returning,
// converting a panic into a failed outcome.
func (w *Worker) execute(ctx context.Context, job *model.Job) (outcome pipeline.Outcome) {
	sink := &progressRecorder{
		jobID:    job.ID,
		registry: w.registry,
		metrics:  w.metrics,
		now:      w.now,
	}

	defer func() {
		if err := w.files.Remove(job.AudioPath); err != nil {
			w.logger.Warn("failed to remove job audio",
				common.JobFields(job.ID, zap.String("path", job.AudioPath), zap.Error(err))...)
		}
	}()
	defer func() {
		sink.close()
		if r := recover(); r != nil {
			w.logger.Error("pipeline panicked", common.JobFields(job.ID, zap.Any("panic", r), zap.Stack("stack"))...)
			outcome = pipeline.Failed(sink.current, fmt.Errorf("internal error: %v", r))
		}
	}()

	return w.runner.Run(ctx, job.AudioPath, job.Options, sink)
}

func (w *Worker) finish(id string, outcome pipeline.Outcome, started time.Time) {
	finished := w.now()
	status := model.JobStatusCompleted
	if !outcome.OK() {
		status = model.JobStatusFailed
	}

	_, err := w.registry.Update(id, func(job *model.Job) error {
		if !job.Status.CanTransitionTo(status) {
			return apperrors.Wrapf(apperrors.ErrInvalidTransition, "%s -> %s", job.Status, status)
		}
		job.Status = status
		job.Progress = ""
		job.FinishedAt = &finished
		if outcome.OK() {
			job.Result = outcome.Transcript
		} else {
			job.Error = outcome.Message()
		}
		return nil
	})
	if err != nil {
		w.logger.Error("failed to record job outcome", common.JobFields(id, zap.Error(err))...)
		return
	}

	w.metrics.jobFinished(status, finished.Sub(started))
	if outcome.OK() {
		w.logger.Info("job completed", common.JobFields(id, zap.Duration("elapsed", finished.Sub(started)))...)
	} else {
		w.logger.Error("job failed", common.JobFields(id,
			zap.String("stage", string(outcome.Err.Stage)), zap.Error(outcome.Err.Err))...)
	}
}

// progressRecorder writes each reported stage to the registry and times the previous one
type progressRecorder struct {
	jobID    string
	registry *Registry
	metrics  *Metrics
	now      func() time.Time

	current model.Stage
	since   time.Time
}

func (p *progressRecorder) Report(stage model.Stage) {
	now := p.now()
	if p.current != "" {
		p.metrics.stageFinished(p.current, now.Sub(p.since))
	}
	p.current, p.since = stage, now

	_, _ = p.registry.Update(p.jobID, func(job *model.Job) error {
		if job.Status != model.JobStatusProcessing {
			return apperrors.ErrInvalidTransition
		}
		job.Progress = stage
		return nil
	})
}

func (p *progressRecorder) close() {
	if p.current != "" {
		p.metrics.stageFinished(p.current, p.now().Sub(p.since))
	}
}
