package script

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrFileMissing    = errors.New("script does not exist")
	ErrNotRegularFile = errors.New("script is not a regular file")
	ErrNotScript      = errors.New("file is not a recognised script")
)

// -- Error Types --

// StatError is returned when the script cannot be stat'd for a reason other than absence.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}

func (e *StatError) Unwrap() error { return e.Cause }
