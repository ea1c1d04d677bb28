package files

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=files

// Store is the filesystem probe the navigation core reads through.
type Store interface {
	RootTitle() string
	// Abs returns the canonical absolute form of name.
	Abs(name string) (string, error)
	Stat(ctx context.Context, name string) (os.FileInfo, error)
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	WalkDir(ctx context.Context, root string, fn fs.WalkDirFunc) error
}

// Exists reports whether name can be stat'ed through the store.
func Exists(ctx context.Context, store Store, name string) bool {
	_, err := store.Stat(ctx, name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(ctx context.Context, store Store, name string) bool {
	info, err := store.Stat(ctx, name)
	if err != nil || info == nil {
		return false
	}
	return info.IsDir()
}

// Length returns the size reported by a single stat call, 0 if unavailable.
// For directories this is the "shallow length".
func Length(ctx context.Context, store Store, name string) int64 {
	info, err := store.Stat(ctx, name)
	if err != nil || info == nil {
		return 0
	}
	return info.Size()
}

// CheckDir returns nil if name is an existing directory.
func CheckDir(ctx context.Context, store Store, name string) error {
	info, err := store.Stat(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &PathError{Op: "stat", Path: name, Err: ErrMissingPath}
		}
		return &PathError{Op: "stat", Path: name, Err: err}
	}
	if info == nil || !info.IsDir() {
		return &PathError{Op: "stat", Path: name, Err: ErrNotDir}
	}
	return nil
}
