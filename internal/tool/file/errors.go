package file

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrFileMissing    = errors.New("file or path does not exist")
	ErrNotRegularFile = errors.New("path is not a regular file")
	ErrIsDirectory    = errors.New("path is a directory")
	ErrParentMissing  = errors.New("parent directory does not exist")
	ErrFileTooLarge   = errors.New("file too large")
)

// -- Error Types --

// StatError is returned when a path cannot be stat'd for a reason other than absence.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}

func (e *StatError) Unwrap() error { return e.Cause }

// ReadError is returned when file content cannot be read.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error { return e.Cause }

// WriteError is returned when file content cannot be written.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

// TooLargeError is returned when content exceeds the configured size limit.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds limit %d", e.Path, e.Size, e.Limit)
}

func (e *TooLargeError) Unwrap() error { return ErrFileTooLarge }
