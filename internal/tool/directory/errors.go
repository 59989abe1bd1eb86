package directory

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrNotADirectory = errors.New("not a directory")
)

// -- Error Types --

// StatError is returned when the target cannot be stat'd.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}

func (e *StatError) Unwrap() error { return e.Cause }

// ListDirError is returned when directory entries cannot be read.
type ListDirError struct {
	Path  string
	Cause error
}

func (e *ListDirError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Path, e.Cause)
}

func (e *ListDirError) Unwrap() error { return e.Cause }
