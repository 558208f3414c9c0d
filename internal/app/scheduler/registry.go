package scheduler

import (
	"sync"

	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// Registry is the thread-safe job table.
//
// A single mutex serializes every operation, so each call is atomic with respect
// to every other. Callers only ever receive clones; the stored *model.Job never
// leaves the lock.
type Registry struct {
	mu    sync.Mutex
	jobs  map[string]*model.Job
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]*model.Job),
	}
}

// Insert stores a new job; fails if the id is already present
func (r *Registry) Insert(job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return apperrors.Wrapf(apperrors.ErrJobExists, "job %s", job.ID)
	}
	r.jobs[job.ID] = job.Clone()
	r.order = append(r.order, job.ID)
	return nil
}

// Get returns a snapshot of the job
func (r *Registry) Get(id string) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, apperrors.JobNotFound(id)
	}
	return job.Clone(), nil
}

// Update applies mutate atomically and returns the resulting snapshot.
// If mutate returns an error the job is left unchanged.
func (r *Registry) Update(id string, mutate func(job *model.Job) error) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, apperrors.JobNotFound(id)
	}

	working := job.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	r.jobs[id] = working
	return working.Clone(), nil
}

// Remove deletes the job, returning its last snapshot
func (r *Registry) Remove(id string) (*model.Job, error) {
	return r.RemoveIf(id, nil)
}

// RemoveIf deletes the job only when guard accepts it
func (r *Registry) RemoveIf(id string, guard func(job *model.Job) error) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, apperrors.JobNotFound(id)
	}
	if guard != nil {
		if err := guard(job.Clone()); err != nil {
			return nil, err
		}
	}

	r.deleteLocked(id)
	return job, nil
}

// RemoveWhere deletes every job matching predicate and returns them in insertion order
func (r *Registry) RemoveWhere(predicate func(job *model.Job) bool) []*model.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []*model.Job
	kept := r.order[:0]
	for _, id := range r.order {
		job := r.jobs[id]
		if predicate(job.Clone()) {
			removed = append(removed, job)
			delete(r.jobs, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return removed
}

// List returns snapshots of the jobs matching predicate in insertion order.
// A nil predicate matches every job.
func (r *Registry) List(predicate func(job *model.Job) bool) []*model.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Job, 0, len(r.order))
	for _, id := range r.order {
		job := r.jobs[id]
		if predicate == nil || predicate(job) {
			out = append(out, job.Clone())
		}
	}
	return out
}

// Count returns how many jobs match predicate
func (r *Registry) Count(predicate func(job *model.Job) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, job := range r.jobs {
		if predicate == nil || predicate(job) {
			n++
		}
	}
	return n
}

// Position returns the number of queued jobs inserted before id, or -1 if id is not queued
func (r *Registry) Position(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.positionLocked(id)
}

// Snapshot returns a copy of the job together with its queue position, both read
// under one lock so a queued job always carries a position
func (r *Registry) Snapshot(id string) (*model.Job, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, -1, apperrors.JobNotFound(id)
	}
	return job.Clone(), r.positionLocked(id), nil
}

func (r *Registry) positionLocked(id string) int {
	position := 0
	for _, queuedID := range r.order {
		job := r.jobs[queuedID]
		if job.Status != model.JobStatusQueued {
			continue
		}
		if queuedID == id {
			return position
		}
		position++
	}
	return -1
}

// deleteLocked removes id from the map and the order slice (lock must be held)
func (r *Registry) deleteLocked(id string) {
	delete(r.jobs, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// hasStatus builds a predicate matching the given status
func hasStatus(status model.JobStatus) func(job *model.Job) bool {
	return func(job *model.Job) bool {
		return job.Status == status
	}
}
