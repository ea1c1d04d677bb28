// Package roots keeps the ordered set of user-registered root folders.
package roots

import (
	"slices"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/logging"
	"go.uber.org/zap"
)

// Registry holds canonical root paths in insertion order without duplicates.
// It is not safe for concurrent use.
type Registry struct {
	store  files.Store
	paths  []string
	logger *zap.Logger
}

func NewRegistry(store files.Store, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = logging.L()
	}
	return &Registry{store: store, logger: logger}
}

// Add canonicalizes path and appends it unless already present.
// It reports whether the registry changed.
func (r *Registry) Add(path string) (bool, error) {
	canonical, err := r.store.Abs(path)
	if err != nil {
		return false, err
	}
	if slices.Contains(r.paths, canonical) {
		r.logger.Debug("root already registered", logging.Path(canonical))
		return false, nil
	}
	r.paths = append(r.paths, canonical)
	r.logger.Info("root added", logging.Path(canonical))
	return true, nil
}

// Remove deletes the exact stored path.
func (r *Registry) Remove(path string) bool {
	i := slices.Index(r.paths, path)
	if i < 0 {
		return false
	}
	r.paths = slices.Delete(r.paths, i, i+1)
	r.logger.Info("root removed", logging.Path(path))
	return true
}

// Contains reports whether path is stored exactly as given.
func (r *Registry) Contains(path string) bool {
	return slices.Contains(r.paths, path)
}

// Paths returns a copy of the roots in insertion order.
func (r *Registry) Paths() []string {
	return slices.Clone(r.paths)
}

func (r *Registry) Len() int {
	return len(r.paths)
}
