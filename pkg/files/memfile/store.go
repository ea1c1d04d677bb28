// Package memfile is an in-memory files.Store for tests and headless runs.
package memfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/logging"
)

var _ files.Store = (*Store)(nil)

type node struct {
	isDir      bool
	size       int64 // file length, or the shallow length of a directory
	unreadable bool
}

// Store keeps a tree of nodes keyed by cleaned absolute path.
type Store struct {
	mu      sync.RWMutex
	nodes   map[string]*node
	latency time.Duration
}

func NewStore() *Store {
	return &Store{nodes: map[string]*node{
		"/": {isDir: true},
	}}
}

func normPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return filepath.Clean(p)
}

// AddDir creates a directory and any missing parents.
func (s *Store) AddDir(path string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mkdirAll(normPath(path))
	return s
}

// AddFile creates a file of the given length and any missing parents.
func (s *Store) AddFile(path string, size int64) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = normPath(path)
	s.mkdirAll(filepath.Dir(path))
	s.nodes[path] = &node{size: size}
	logging.L().Debug("memfile: added file", logging.Path(path), logging.Int64("size", size))
	return s
}

// SetShallowLength sets what Stat reports as the size of a directory.
func (s *Store) SetShallowLength(path string, length int64) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = normPath(path)
	s.mkdirAll(path)
	s.nodes[path].size = length
	return s
}

// SetUnreadable makes ReadDir of path fail with fs.ErrPermission.
func (s *Store) SetUnreadable(path string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = normPath(path)
	s.mkdirAll(path)
	s.nodes[path].unreadable = true
	return s
}

// SetLatency delays every directory read, honouring context cancellation.
func (s *Store) SetLatency(d time.Duration) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
	return s
}

// Remove deletes path and everything below it.
func (s *Store) Remove(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = normPath(path)
	if path == "/" {
		return false
	}
	if _, ok := s.nodes[path]; !ok {
		return false
	}
	prefix := path + "/"
	for p := range s.nodes {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(s.nodes, p)
		}
	}
	return true
}

func (s *Store) mkdirAll(path string) {
	for p, more := path, true; more; p, more = files.Parent(p) {
		if n, ok := s.nodes[p]; ok {
			if !n.isDir {
				n.isDir = true
				n.size = 0
			}
		} else {
			s.nodes[p] = &node{isDir: true}
		}
	}
}

func (s *Store) RootTitle() string {
	return "memory"
}

func (s *Store) Abs(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty path")
	}
	return normPath(name), nil
}

func (s *Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	name = normPath(name)
	n, ok := s.nodes[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return files.NewFileInfo(s.dirEntry(name, n), files.WithSize(n.size)), nil
}

func (s *Store) dirEntry(path string, n *node) files.DirEntry {
	name := filepath.Base(path)
	if name == "/" {
		name = ""
	}
	return files.NewDirEntry(name, n.isDir, files.WithSize(n.size))
}

func (s *Store) wait(ctx context.Context) error {
	s.mu.RLock()
	latency := s.latency
	s.mu.RUnlock()
	if latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ReadDir returns children sorted by name, like os.ReadDir.
func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	name = normPath(name)
	n, ok := s.nodes[name]
	switch {
	case !ok:
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	case !n.isDir:
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: files.ErrNotDir}
	case n.unreadable:
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	prefix := name + "/"
	if name == "/" {
		prefix = "/"
	}
	var result []os.DirEntry
	for p, child := range s.nodes {
		if p == "/" || !strings.HasPrefix(p, prefix) || strings.Contains(p[len(prefix):], "/") {
			continue
		}
		result = append(result, s.dirEntry(p, child))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result, nil
}

// WalkDir follows the fs.WalkDir contract over the in-memory tree.
func (s *Store) WalkDir(ctx context.Context, root string, fn fs.WalkDirFunc) error {
	root = normPath(root)
	info, err := s.Stat(ctx, root)
	if err != nil {
		err = fn(root, nil, err)
	} else {
		err = s.walk(ctx, root, fs.FileInfoToDirEntry(info), fn)
	}
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (s *Store) walk(ctx context.Context, path string, d fs.DirEntry, fn fs.WalkDirFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(path, d, nil); err != nil || !d.IsDir() {
		if err == fs.SkipDir && d.IsDir() {
			err = nil
		}
		return err
	}
	children, err := s.ReadDir(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(path, d, err); err != nil {
			if err == fs.SkipDir && d.IsDir() {
				err = nil
			}
			return err
		}
	}
	for _, child := range children {
		if err := s.walk(ctx, filepath.Join(path, child.Name()), child, fn); err != nil {
			if err == fs.SkipDir {
				break
			}
			return err
		}
	}
	return nil
}
