package osfile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/fsutils"
)

var osReadDir = os.ReadDir
var osStat = os.Stat
var osHostname = os.Hostname
var filepathWalkDir = filepath.WalkDir

var _ files.Store = (*Store)(nil)

// Store reads the local disk.
type Store struct {
	title string
}

func NewStore() *Store {
	var store Store
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	store.title = "🖥️" + store.title
	return &store
}

func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".station")
}

func (s Store) Abs(name string) (string, error) {
	return fsutils.CanonicalPath(name)
}

func (s Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osStat(name)
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

// WalkDir walks the tree rooted at root and stops early once ctx is done.
func (s Store) WalkDir(ctx context.Context, root string, fn fs.WalkDirFunc) error {
	return filepathWalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fn(path, d, err)
	})
}
