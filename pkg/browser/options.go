package browser

import (
	"github.com/filetug/foldertug/pkg/dirsize"
	"github.com/filetug/foldertug/pkg/sorting"
	"go.uber.org/zap"
)

type options struct {
	logger      *zap.Logger
	sort        sorting.State
	calculator  *dirsize.Calculator
	sizeOptions []dirsize.Option
	roots       []string
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSort sets the initial sort state.
func WithSort(s sorting.State) Option {
	return func(o *options) { o.sort = s }
}

// WithCalculator shares an existing calculator. The browser will not close it.
func WithCalculator(c *dirsize.Calculator) Option {
	return func(o *options) { o.calculator = c }
}

// WithSizeOptions configures the calculator the browser creates for itself.
// A dirsize.WithExecutor here replaces the Updates queue.
func WithSizeOptions(opts ...dirsize.Option) Option {
	return func(o *options) { o.sizeOptions = append(o.sizeOptions, opts...) }
}

// WithRoots registers roots at start-up. Paths that are not
// existing directories are logged and skipped.
func WithRoots(paths ...string) Option {
	return func(o *options) { o.roots = append(o.roots, paths...) }
}
