package fs

import (
	"errors"
	"fmt"
)

var ErrInvalidOffset = errors.New("invalid offset")

// Stages of an atomic write, reported by AtomicWriteError.
const (
	StageCreateTemp = "create temp file"
	StageWrite      = "write temp file"
	StageSync       = "sync temp file"
	StageClose      = "close temp file"
	StageChmod      = "set permissions"
	StageRename     = "rename into place"
)

// AtomicWriteError reports which step of WriteFileAtomic failed. The target is never
// left half-written: on any failure the temp file is removed and Path is untouched.
type AtomicWriteError struct {
	Path  string
	Stage string
	Cause error
}

func (e *AtomicWriteError) Error() string {
	return fmt.Sprintf("atomic write of %s failed to %s: %v", e.Path, e.Stage, e.Cause)
}

func (e *AtomicWriteError) Unwrap() error { return e.Cause }
