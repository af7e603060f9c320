// Package writeback runs cache writes in the background on a bounded pool of
// workers so that a successful remote call never waits on the local store.
package writeback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/crowdfund/pkg/metrics"
)

// ErrClosed is returned by Submit once Close has been called.
var ErrClosed = errors.New("write-back queue closed")

// closeGrace bounds how long Close waits for running tasks to return after
// cancelling them.
const closeGrace = 2 * time.Second

// Task is one cache write.
type Task struct {
	// Family labels the entity family in logs and metrics.
	Family string
	// Name describes the write, e.g. "upsert project 7".
	Name string
	Run  func(ctx context.Context) error
}

// Queue is a bounded write-back queue. Submitted tasks run on a fixed set of
// workers with a context that is independent of the submitter's and is only
// cancelled when Close gives up waiting.
type Queue struct {
	tasks  chan Task
	logger *slog.Logger

	base   context.Context
	cancel context.CancelFunc

	// mu guards closed against concurrent sends on tasks.
	mu     sync.RWMutex
	closed bool

	pmu     sync.Mutex
	pending int
	idle    chan struct{}

	workers sync.WaitGroup
	stopped chan struct{}
}

// New starts a queue with the given number of workers and buffer size.
func New(workers, size int, logger *slog.Logger) *Queue {
	if workers < 1 {
		workers = 1
	}
	if size < 0 {
		size = 0
	}
	base, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)
	q := &Queue{
		tasks:   make(chan Task, size),
		logger:  logger.With("component", "writeback"),
		base:    base,
		cancel:  cancel,
		idle:    idle,
		stopped: make(chan struct{}),
	}
	q.workers.Add(workers)
	for range workers {
		go q.work()
	}
	go func() {
		q.workers.Wait()
		close(q.stopped)
	}()
	return q
}

// Submit enqueues t. It blocks while the buffer is full; if ctx ends first
// the task is dropped and ctx's error returned.
func (q *Queue) Submit(ctx context.Context, t Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.RecordCacheWrite(t.Family, "dropped")
		return ErrClosed
	}

	q.begin()
	select {
	case q.tasks <- t:
		metrics.WriteQueueDepth.Inc()
		return nil
	case <-ctx.Done():
		q.end()
		metrics.RecordCacheWrite(t.Family, "dropped")
		q.logger.Warn("Cache write dropped, queue full", "family", t.Family, "task", t.Name, "error", ctx.Err())
		return fmt.Errorf("submit %s: %w", t.Name, ctx.Err())
	}
}

// Flush blocks until every task submitted so far has finished or ctx ends.
func (q *Queue) Flush(ctx context.Context) error {
	q.pmu.Lock()
	idle := q.idle
	q.pmu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of submitted tasks that have not finished.
func (q *Queue) Pending() int {
	q.pmu.Lock()
	defer q.pmu.Unlock()
	return q.pending
}

// Close stops intake and waits for queued tasks to finish. If ctx ends
// first, running tasks see their context cancelled and the remaining ones
// are dropped. Close then waits up to closeGrace for the workers to exit
// before returning ctx's error. Close may be called more than once.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()

	select {
	case <-q.stopped:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		q.logger.Warn("Write-back queue closed before draining", "pending", q.Pending())
		select {
		case <-q.stopped:
		case <-time.After(closeGrace):
			q.logger.Error("Write-back workers still running after cancel", "grace", closeGrace)
		}
		return ctx.Err()
	}
}

func (q *Queue) work() {
	defer q.workers.Done()
	for t := range q.tasks {
		metrics.WriteQueueDepth.Dec()
		q.run(t)
	}
}

func (q *Queue) run(t Task) {
	defer q.end()
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordCacheWrite(t.Family, "error")
			q.logger.Error("Panic recovered in cache write", "family", t.Family, "task", t.Name, "panic", r)
		}
	}()

	if err := q.base.Err(); err != nil {
		metrics.RecordCacheWrite(t.Family, "dropped")
		q.logger.Warn("Cache write dropped on shutdown", "family", t.Family, "task", t.Name)
		return
	}
	if err := t.Run(q.base); err != nil {
		metrics.RecordCacheWrite(t.Family, "error")
		q.logger.Error("Cache write failed", "family", t.Family, "task", t.Name, "error", err)
		return
	}
	metrics.RecordCacheWrite(t.Family, "ok")
	q.logger.Debug("Cache write applied", "family", t.Family, "task", t.Name)
}

func (q *Queue) begin() {
	q.pmu.Lock()
	defer q.pmu.Unlock()
	if q.pending == 0 {
		q.idle = make(chan struct{})
	}
	q.pending++
}

func (q *Queue) end() {
	q.pmu.Lock()
	defer q.pmu.Unlock()
	q.pending--
	if q.pending == 0 {
		close(q.idle)
	}
}
