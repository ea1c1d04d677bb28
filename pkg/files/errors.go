package files

import "errors"

var (
	ErrMissingPath = errors.New("path does not exist")
	ErrNotDir      = errors.New("not a directory")
	ErrUnreadable  = errors.New("directory is unreadable")
)

// PathError records the failing operation and path.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
