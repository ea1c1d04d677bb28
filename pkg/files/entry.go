package files

import (
	"path/filepath"
	"strings"
	"sync"
)

// Entry is one child of a listed folder.
// Everything but the size cell is fixed at construction.
type Entry struct {
	path  string
	name  string
	ext   string
	isDir bool

	mu   sync.RWMutex
	size Size
}

// NewEntry creates an entry for fullPath. For files length becomes the
// computed size, directories start with a pending size.
func NewEntry(fullPath string, isDir bool, length int64) *Entry {
	name := filepath.Base(fullPath)
	e := &Entry{
		path:  fullPath,
		name:  name,
		isDir: isDir,
	}
	if isDir {
		e.size = PendingSize()
	} else {
		e.ext = Ext(name)
		e.size = ComputedSize(length)
	}
	return e
}

// Ext returns the lowercased text after the final dot of name, or "".
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

func (e *Entry) Path() string { return e.path }
func (e *Entry) Name() string { return e.name }
func (e *Entry) Ext() string  { return e.ext }
func (e *Entry) IsDir() bool  { return e.isDir }

func (e *Entry) String() string {
	return e.path
}

func (e *Entry) Size() Size {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.size
}

// SetSize resolves a pending size cell. It returns false, leaving the cell
// untouched, if the cell was already resolved or s is itself pending.
func (e *Entry) SetSize(s Size) bool {
	if s.State == SizePending {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.size.State != SizePending {
		return false
	}
	e.size = s
	return true
}

// Parent returns the parent of p and false when p is a filesystem root.
func Parent(p string) (string, bool) {
	clean := filepath.Clean(p)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", false
	}
	return parent, true
}
