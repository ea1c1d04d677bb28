// Package profiling backs the -cpuprofile and -memprofile flags.
package profiling

import (
	"io"
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/filetug/foldertug/pkg/logging"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = pprof.StartCPUProfile
	pprofStopCPUProfile   = pprof.StopCPUProfile
	pprofWriteHeapProfile = pprof.WriteHeapProfile
	memProfilingInterval  = 30 * time.Second
)

// DoCPUProfiling starts a CPU profile written to path and returns the stop func.
// Failures are logged; the returned func is never nil.
func DoCPUProfiling(path string) (stop func()) {
	f, err := osCreate(path)
	if err != nil {
		logging.L().Error("could not create CPU profile", logging.Path(path), logging.Err(err))
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		logging.L().Error("could not start CPU profile", logging.Path(path), logging.Err(err))
		_ = f.Close()
		return func() {}
	}
	stopCPUProfile := pprofStopCPUProfile
	return func() {
		stopCPUProfile()
		if err := f.Close(); err != nil {
			logging.L().Error("could not close CPU profile", logging.Path(path), logging.Err(err))
		}
	}
}

// DoMemProfiling rewrites a heap profile at path periodically.
// The returned func stops the ticker and writes a final profile.
func DoMemProfiling(path string) (stop func()) {
	write := newHeapWriter(path)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func(interval time.Duration) {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				write()
			}
		}
	}(memProfilingInterval)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
		write()
	}
}

func newHeapWriter(path string) func() {
	create := osCreate
	writeHeap := pprofWriteHeapProfile
	var mu sync.Mutex
	return func() {
		mu.Lock()
		defer mu.Unlock()
		f, err := create(path)
		if err != nil {
			logging.L().Error("could not create memory profile", logging.Path(path), logging.Err(err))
			return
		}
		defer func(w io.Closer) {
			_ = w.Close()
		}(f)
		if err = writeHeap(f); err != nil {
			logging.L().Error("could not write memory profile", logging.Path(path), logging.Err(err))
		}
	}
}
