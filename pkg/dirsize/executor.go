package dirsize

import (
	"context"
	"sync"
)

// Executor runs completion callbacks on the caller's goroutine of choice,
// e.g. tview's Application.QueueUpdateDraw.
type Executor func(fn func())

// Immediate runs fn on the worker goroutine that produced the result.
func Immediate(fn func()) {
	fn()
}

// Queue collects callbacks until the owner drains them.
// Headless harnesses and tests use it in place of a UI event loop.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
	ready chan struct{}
}

func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Post is an Executor.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled after Post.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs queued callbacks in order and returns how many ran.
func (q *Queue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, task := range tasks {
		task()
	}
	return len(tasks)
}

// Await drains until at least n callbacks have run or ctx is done.
func (q *Queue) Await(ctx context.Context, n int) error {
	ran := q.Drain()
	for ran < n {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.ready:
			ran += q.Drain()
		}
	}
	return nil
}
