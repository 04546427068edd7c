package library

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingArgument is returned when no path was given
	ErrMissingArgument = errors.New("missing path argument")
	// ErrNotFileOrDir is returned when the path is neither a regular file nor a directory
	ErrNotFileOrDir = errors.New("path is neither a file nor a directory")
	// ErrInvalidCategory is returned when no category can be derived from a file name
	ErrInvalidCategory = errors.New("cannot derive category from file name")
)

// FileReadError records a failure to open or list a specific path
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}
