package dirsize

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/logging"
	"github.com/filetug/foldertug/pkg/metrics"
	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("size pool is closed")

// Request asks the pool for the size of Path.
// It is dropped unstarted once Ctx is done.
type Request struct {
	Ctx      context.Context
	Path     string
	Callback func(files.Size)
}

// Pool runs size computations on a fixed number of workers.
type Pool struct {
	workers  int
	compute  func(ctx context.Context, path string) files.Size
	requests chan Request
	wg       sync.WaitGroup
	handoffs sync.WaitGroup
	mu       sync.RWMutex // closed is set under the write lock, sends happen under the read lock
	ctx      context.Context
	cancel   context.CancelFunc
	closed   atomic.Bool
	logger   *zap.Logger
}

// NewPool starts workers goroutines calling compute.
func NewPool(workers, queueSize int, compute func(ctx context.Context, path string) files.Size, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize < workers {
		queueSize = workers
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &Pool{
		workers:  workers,
		compute:  compute,
		requests: make(chan Request, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case req := <-p.requests:
			p.process(req)
		}
	}
}

func (p *Pool) process(req Request) {
	defer metrics.SizeJobDone()
	if req.Ctx != nil && req.Ctx.Err() != nil {
		metrics.RecordSizeJob(metrics.ResultDropped, 0)
		return
	}
	// Navigation only cancels jobs that have not started; a running walk
	// stops on Close or its own timeout.
	size := p.compute(p.ctx, req.Path)
	if p.ctx.Err() != nil {
		metrics.RecordSizeJob(metrics.ResultDropped, 0)
		return
	}
	if req.Callback == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("size callback panicked", logging.Path(req.Path), zap.Any("panic", r))
		}
	}()
	req.Callback(size)
}

// Submit queues req, or returns ErrPoolClosed.
// A full queue does not drop req: it is handed over once a slot frees up.
func (p *Pool) Submit(req Request) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() || p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	metrics.SizeJobQueued()
	select {
	case p.requests <- req:
		return nil
	default:
	}
	p.handoffs.Add(1)
	go func() {
		defer p.handoffs.Done()
		var done <-chan struct{}
		if req.Ctx != nil {
			done = req.Ctx.Done()
		}
		select {
		case p.requests <- req:
		case <-done:
			metrics.SizeJobDone()
			metrics.RecordSizeJob(metrics.ResultDropped, 0)
		case <-p.ctx.Done():
			metrics.SizeJobDone()
		}
	}()
	return nil
}

// Close cancels running computations and waits for the workers to exit.
// Queued requests are discarded. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed.Swap(true) {
		p.mu.Unlock()
		return
	}
	start := time.Now()
	p.cancel()
	p.mu.Unlock()
	p.wg.Wait()
	p.handoffs.Wait()
	for {
		select {
		case <-p.requests:
			metrics.SizeJobDone()
		default:
			p.logger.Info("size pool closed", zap.Int("workers", p.workers), zap.Duration("took", time.Since(start)))
			return
		}
	}
}
