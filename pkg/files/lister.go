package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// List reads the immediate children of dir in the order the store returns them.
// A directory that cannot be enumerated yields an error wrapping ErrUnreadable,
// or ErrMissingPath if it does not exist.
func List(ctx context.Context, store Store, dir string) ([]*Entry, error) {
	children, err := store.ReadDir(ctx, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &PathError{Op: "readdir", Path: dir, Err: ErrMissingPath}
		}
		return nil, &PathError{Op: "readdir", Path: dir, Err: fmt.Errorf("%w: %w", ErrUnreadable, err)}
	}
	entries := make([]*Entry, 0, len(children))
	for _, child := range children {
		fullPath := filepath.Join(dir, child.Name())
		isDir := child.IsDir()
		var length int64
		if child.Type()&os.ModeSymlink != 0 {
			// The link itself says nothing about its target.
			if info, err := store.Stat(ctx, fullPath); err == nil && info != nil {
				isDir = info.IsDir()
				length = info.Size()
			}
		} else if !isDir {
			if info, err := child.Info(); err == nil && info != nil {
				length = info.Size()
			}
		}
		entries = append(entries, NewEntry(fullPath, isDir, length))
	}
	return entries, nil
}
