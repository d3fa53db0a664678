// Package loop is a single-threaded task queue standing in for the host UI
// event loop.
//
// Defer enqueues work for a later turn; RunNow runs it inline. The host
// drives the queue either by calling RunPending once per turn or by running
// Run in its own goroutine. Deferred tasks run in enqueue order, and a task
// enqueued while a turn is running waits for the next turn.
//
// There is no way to cancel a deferred task. Once enqueued it runs unless
// the queue is never driven again.
package loop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Scheduler is the subset of Queue the view layer depends on.
type Scheduler interface {
	Defer(fn func())
	RunNow(fn func())
}

// Observer receives queue activity. telemetry.Metrics implements it.
type Observer interface {
	TaskDeferred()
	TaskRan()
	TaskPanicked()
}

// Queue is a FIFO of deferred tasks.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}

	logger   *slog.Logger
	observer Observer
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger sets the logger used for recovered task panics.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithObserver sets the activity observer.
func WithObserver(o Observer) Option {
	return func(q *Queue) {
		q.observer = o
	}
}

// New creates an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.logger == nil {
		q.logger = slog.Default()
	}
	return q
}

// Defer schedules fn for a later turn. A nil fn is ignored.
func (q *Queue) Defer(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	if q.observer != nil {
		q.observer.TaskDeferred()
	}

	// Non-blocking: one pending wake-up is enough to trigger a turn.
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// RunNow runs fn immediately on the caller's goroutine.
func (q *Queue) RunNow(fn func()) {
	if fn == nil {
		return
	}
	fn()
}

// Pending returns the number of tasks waiting for a turn.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunPending runs one turn: the tasks that were queued when the call began,
// in order. It returns how many tasks ran.
func (q *Queue) RunPending() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		q.run(fn)
	}
	return len(batch)
}

// Drain runs turns until the queue is empty or maxTurns is reached. It
// returns the number of turns taken. maxTurns <= 0 means no limit.
func (q *Queue) Drain(maxTurns int) int {
	turns := 0
	for q.Pending() > 0 {
		if maxTurns > 0 && turns >= maxTurns {
			break
		}
		q.RunPending()
		turns++
	}
	return turns
}

// Run drives the queue until ctx is done, running a turn whenever tasks
// are deferred. It returns ctx.Err().
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
			q.RunPending()
			// Tasks deferred during the turn may have consumed the wake
			// signal already; re-arm so they get their own turn.
			if q.Pending() > 0 {
				select {
				case q.wake <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (q *Queue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("deferred task panicked", "panic", fmt.Sprint(r))
			if q.observer != nil {
				q.observer.TaskPanicked()
			}
		}
	}()
	fn()
	if q.observer != nil {
		q.observer.TaskRan()
	}
}
