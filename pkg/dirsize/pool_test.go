package dirsize

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func constCompute(size files.Size) func(context.Context, string) files.Size {
	return func(context.Context, string) files.Size { return size }
}

func TestNewPool(t *testing.T) {
	t.Run("creates_pool_with_specified_workers", func(t *testing.T) {
		pool := NewPool(3, 10, constCompute(files.ComputedSize(1)), zap.NewNop())
		defer pool.Close()
		assert.Equal(t, 3, pool.workers)
		assert.Equal(t, 10, cap(pool.requests))
	})

	t.Run("defaults_to_2_workers_for_invalid_input", func(t *testing.T) {
		pool := NewPool(0, 0, constCompute(files.ComputedSize(1)), zap.NewNop())
		defer pool.Close()
		assert.Equal(t, 2, pool.workers)
		assert.Equal(t, 2, cap(pool.requests))
	})
}

func TestPool_Submit(t *testing.T) {
	t.Run("processes_requests", func(t *testing.T) {
		pool := NewPool(2, 4, constCompute(files.ComputedSize(7)), zap.NewNop())
		defer pool.Close()

		got := make(chan files.Size, 1)
		assert.NoError(t, pool.Submit(Request{Path: "/x", Callback: func(s files.Size) { got <- s }}))
		select {
		case s := <-got:
			assert.Equal(t, files.ComputedSize(7), s)
		case <-time.After(5 * time.Second):
			t.Fatal("request not processed")
		}
	})

	t.Run("returns_false_after_close", func(t *testing.T) {
		pool := NewPool(2, 4, constCompute(files.ComputedSize(7)), zap.NewNop())
		pool.Close()
		assert.ErrorIs(t, pool.Submit(Request{Path: "/x"}), ErrPoolClosed)
	})

	t.Run("full_queue_does_not_drop", func(t *testing.T) {
		release := make(chan struct{})
		pool := NewPool(1, 1, func(ctx context.Context, path string) files.Size {
			<-release
			return files.ComputedSize(1)
		}, zap.NewNop())
		defer pool.Close()

		var done sync.WaitGroup
		var count atomic.Int32
		for i := 0; i < 10; i++ {
			done.Add(1)
			assert.NoError(t, pool.Submit(Request{Path: "/x", Callback: func(files.Size) {
				count.Add(1)
				done.Done()
			}}))
		}
		close(release)
		done.Wait()
		assert.Equal(t, int32(10), count.Load())
	})

	t.Run("cancelled_request_is_skipped", func(t *testing.T) {
		var computed atomic.Int32
		pool := NewPool(1, 4, func(ctx context.Context, path string) files.Size {
			computed.Add(1)
			return files.ComputedSize(1)
		}, zap.NewNop())
		defer pool.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fired := make(chan struct{}, 1)
		pool.Submit(Request{Ctx: ctx, Path: "/x", Callback: func(files.Size) { fired <- struct{}{} }})

		done := make(chan struct{})
		pool.Submit(Request{Path: "/y", Callback: func(files.Size) { close(done) }})
		<-done
		assert.Equal(t, int32(1), computed.Load())
		assert.Len(t, fired, 0)
	})

	t.Run("callback_panic_is_recovered", func(t *testing.T) {
		pool := NewPool(1, 4, constCompute(files.ComputedSize(1)), zap.NewNop())
		defer pool.Close()

		pool.Submit(Request{Path: "/x", Callback: func(files.Size) { panic("boom") }})
		done := make(chan struct{})
		pool.Submit(Request{Path: "/y", Callback: func(files.Size) { close(done) }})
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("worker died after panic")
		}
	})
}

func TestPool_Close_Idempotent(t *testing.T) {
	pool := NewPool(2, 4, constCompute(files.ComputedSize(1)), zap.NewNop())
	pool.Close()
	pool.Close()
	assert.True(t, pool.closed.Load())
}

func TestPool_Close_DrainsConcurrentSubmits(t *testing.T) {
	for i := 0; i < 50; i++ {
		release := make(chan struct{})
		pool := NewPool(1, 1, func(ctx context.Context, _ string) files.Size {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return files.ComputedSize(1)
		}, zap.NewNop())

		var wg sync.WaitGroup
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < 4; k++ {
					_ = pool.Submit(Request{Path: "/p"})
				}
			}()
		}
		pool.Close()
		wg.Wait()
		close(release)

		assert.Empty(t, pool.requests, "iteration %d left requests queued after Close", i)
		assert.ErrorIs(t, pool.Submit(Request{Path: "/late"}), ErrPoolClosed)
	}
}
