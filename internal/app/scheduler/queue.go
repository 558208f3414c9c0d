package scheduler

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO of job ids with a single blocking consumer.
// Enqueue never blocks; Dequeue waits until an id is available.
type Queue struct {
	mu     sync.Mutex
	ids    []string
	notify chan struct{}
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
	}
}

// Enqueue appends id to the tail
func (q *Queue) Enqueue(id string) {
	q.mu.Lock()
	q.ids = append(q.ids, id)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Dequeue removes and returns the head, blocking until one exists or ctx is done
func (q *Queue) Dequeue(ctx context.Context) (string, error) {
	for {
		if id, ok := q.tryDequeue(); ok {
			return id, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-q.notify:
		}
	}
}

// Len returns the number of ids waiting, including ids whose jobs were deleted
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}

func (q *Queue) tryDequeue() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ids) == 0 {
		return "", false
	}
	id := q.ids[0]
	q.ids[0] = ""
	q.ids = q.ids[1:]
	return id, true
}
