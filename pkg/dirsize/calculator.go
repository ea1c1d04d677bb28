// Package dirsize computes folder sizes off the UI goroutine.
//
// Small folders are summed by a serial walk. Folders whose shallow length
// reaches the large-folder threshold are walked in parallel under a hard
// timeout; a timeout or an empty sum falls back to an estimate of
// multiplier × shallow length.
package dirsize

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"
	"weak"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/logging"
	"github.com/filetug/foldertug/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultWorkers              = 2
	DefaultQueueSize            = 256
	DefaultJoinTimeout          = 5000 * time.Millisecond
	DefaultLargeFolderThreshold = int64(1_000_000_000)
	DefaultFallbackMultiplier   = int64(3)
)

type options struct {
	workers              int
	queueSize            int
	walkers              int
	joinTimeout          time.Duration
	largeFolderThreshold int64
	fallbackMultiplier   int64
	executor             Executor
	logger               *zap.Logger
}

type Option func(*options)

func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func WithQueueSize(n int) Option {
	return func(o *options) { o.queueSize = n }
}

// WithWalkers limits concurrent subtree walks of one large folder.
func WithWalkers(n int) Option {
	return func(o *options) { o.walkers = n }
}

func WithJoinTimeout(d time.Duration) Option {
	return func(o *options) { o.joinTimeout = d }
}

func WithLargeFolderThreshold(n int64) Option {
	return func(o *options) { o.largeFolderThreshold = n }
}

func WithFallbackMultiplier(m int64) Option {
	return func(o *options) { o.fallbackMultiplier = m }
}

// WithExecutor sets where completion callbacks run. Defaults to Immediate.
func WithExecutor(e Executor) Option {
	return func(o *options) { o.executor = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Calculator computes subtree sizes through a files.Store.
type Calculator struct {
	store  files.Store
	opts   options
	pool   *Pool
	flight singleflight.Group
	closed atomic.Bool
}

func NewCalculator(store files.Store, o ...Option) *Calculator {
	opts := options{
		workers:              DefaultWorkers,
		queueSize:            DefaultQueueSize,
		walkers:              runtime.GOMAXPROCS(0),
		joinTimeout:          DefaultJoinTimeout,
		largeFolderThreshold: DefaultLargeFolderThreshold,
		fallbackMultiplier:   DefaultFallbackMultiplier,
		executor:             Immediate,
	}
	for _, opt := range o {
		opt(&opts)
	}
	if opts.logger == nil {
		opts.logger = logging.L()
	}
	if opts.walkers <= 0 {
		opts.walkers = 1
	}
	c := &Calculator{store: store, opts: opts}
	c.pool = NewPool(opts.workers, opts.queueSize, c.Compute, opts.logger)
	return c
}

// ComputeAsync queues a size job for path. onComplete runs through the
// executor unless ctx is done or the calculator is closed by then.
func (c *Calculator) ComputeAsync(ctx context.Context, path string, onComplete func(files.Size)) bool {
	err := c.pool.Submit(Request{
		Ctx:  ctx,
		Path: path,
		Callback: func(size files.Size) {
			c.opts.executor(func() {
				if c.closed.Load() || ctx.Err() != nil {
					metrics.RecordSizeJob(metrics.ResultDropped, 0)
					return
				}
				onComplete(size)
			})
		},
	})
	return err == nil
}

// Resolve computes the size of a directory entry and stores it in the entry.
// The job only holds a weak reference: if the listing that owned the entry
// is gone, the result is discarded. onComplete runs after the entry changed.
func (c *Calculator) Resolve(ctx context.Context, entry *files.Entry, onComplete func(*files.Entry)) bool {
	if !entry.IsDir() {
		return false
	}
	ref := weak.Make(entry)
	return c.ComputeAsync(ctx, entry.Path(), func(size files.Size) {
		e := ref.Value()
		if e == nil {
			metrics.RecordSizeJob(metrics.ResultDropped, 0)
			return
		}
		if e.SetSize(size) && onComplete != nil {
			onComplete(e)
		}
	})
}

// Close cancels queued and running jobs. Their callbacks never run.
func (c *Calculator) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.pool.Close()
}

// Compute returns the size of path synchronously.
// Concurrent calls for the same path share one computation.
func (c *Calculator) Compute(ctx context.Context, path string) files.Size {
	v, _, _ := c.flight.Do(path, func() (any, error) {
		start := time.Now()
		size, result := c.compute(ctx, path)
		metrics.RecordSizeJob(result, time.Since(start))
		c.opts.logger.Debug("size computed",
			logging.Path(path),
			zap.String("result", result),
			logging.Int64("bytes", size.Bytes),
			logging.Duration("took", time.Since(start)))
		return size, nil
	})
	return v.(files.Size)
}

func (c *Calculator) compute(ctx context.Context, path string) (files.Size, string) {
	info, err := c.store.Stat(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return files.ComputedSize(0), metrics.ResultMissing
		}
		c.opts.logger.Warn("size stat failed", logging.Path(path), logging.Err(err))
		return files.UnknownSize(), metrics.ResultUnknown
	}
	if !info.IsDir() {
		return files.ComputedSize(info.Size()), metrics.ResultExact
	}
	shallow := info.Size()
	if shallow < c.opts.largeFolderThreshold {
		total, err := c.serialSum(ctx, path)
		if err != nil {
			return files.UnknownSize(), metrics.ResultUnknown
		}
		return files.ComputedSize(total), metrics.ResultExact
	}
	return c.boundedSum(ctx, path, shallow)
}

// serialSum walks dir depth-first on the calling goroutine.
// Unreadable directories and symlinks contribute zero.
func (c *Calculator) serialSum(ctx context.Context, dir string) (int64, error) {
	children, err := c.store.ReadDir(ctx, dir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		c.opts.logger.Warn("unreadable directory", logging.Path(dir), logging.Err(err))
		return 0, nil
	}
	var total int64
	for _, child := range children {
		if child.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if child.IsDir() {
			n, err := c.serialSum(ctx, filepath.Join(dir, child.Name()))
			if err != nil {
				return 0, err
			}
			total += n
			continue
		}
		if info, err := child.Info(); err == nil && info != nil {
			total += info.Size()
		}
	}
	return total, nil
}

type sumResult struct {
	total int64
	err   error
}

// boundedSum runs parallelSum and gives up after the join timeout.
func (c *Calculator) boundedSum(ctx context.Context, path string, shallow int64) (files.Size, string) {
	walkCtx, cancel := context.WithTimeout(ctx, c.opts.joinTimeout)
	defer cancel()

	done := make(chan sumResult, 1)
	go func() {
		total, err := c.parallelSum(walkCtx, path)
		done <- sumResult{total: total, err: err}
	}()

	fallback := files.EstimatedSize(c.opts.fallbackMultiplier * shallow)
	select {
	case r := <-done:
		switch {
		case r.err == nil && r.total > 0:
			return files.ComputedSize(r.total), metrics.ResultExact
		case r.err == nil:
			return fallback, metrics.ResultEstimated
		case errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil:
			c.opts.logger.Warn("size timeout", logging.Path(path), logging.Duration("timeout", c.opts.joinTimeout))
			return fallback, metrics.ResultEstimated
		default:
			c.opts.logger.Warn("size walk failed", logging.Path(path), logging.Err(r.err))
			return files.UnknownSize(), metrics.ResultUnknown
		}
	case <-walkCtx.Done():
		if ctx.Err() != nil {
			return files.UnknownSize(), metrics.ResultUnknown
		}
		c.opts.logger.Warn("size timeout", logging.Path(path), logging.Duration("timeout", c.opts.joinTimeout))
		return fallback, metrics.ResultEstimated
	}
}

// parallelSum fans out one store walk per child directory.
func (c *Calculator) parallelSum(ctx context.Context, root string) (int64, error) {
	children, err := c.store.ReadDir(ctx, root)
	if err != nil {
		return 0, err
	}
	var total atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.walkers)
	for _, child := range children {
		if child.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if !child.IsDir() {
			if info, err := child.Info(); err == nil && info != nil {
				total.Add(info.Size())
			}
			continue
		}
		subtree := filepath.Join(root, child.Name())
		g.Go(func() error {
			return c.store.WalkDir(gctx, subtree, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					if errors.Is(err, fs.ErrPermission) {
						if d != nil && d.IsDir() {
							return fs.SkipDir
						}
						return nil
					}
					return err
				}
				if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
					return nil
				}
				info, err := d.Info()
				if err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						return nil
					}
					return err
				}
				if info != nil {
					total.Add(info.Size())
				}
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
