package file

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Cyclone1070/boxed/internal/tool"
	"github.com/Cyclone1070/boxed/internal/tool/service/path"
)

type statter interface {
	Stat(path string) (os.FileInfo, error)
}

// statTarget stats abs, mapping absence to ErrFileMissing.
func statTarget(fs statter, abs string) (os.FileInfo, error) {
	info, err := fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, abs)
		}
		return nil, &StatError{Path: abs, Cause: err}
	}
	return info, nil
}

// failure converts a tool error into a model-readable Failure. Raw causes are only logged.
func failure(logger *slog.Logger, toolName, verb, display string, err error) tool.Failure {
	logger.Debug(toolName+" failed", "path", display, "error", err)

	var tooLarge *TooLargeError
	switch {
	case errors.Is(err, path.ErrOutsideWorkspace):
		return tool.Fail(tool.KindOutsideRoot, "Cannot %s %q as it is outside the permitted working directory", verb, display)
	case errors.Is(err, ErrFileMissing):
		return tool.Fail(tool.KindNotFound, "File not found: %q", display)
	case errors.Is(err, ErrParentMissing):
		return tool.Fail(tool.KindNotFound, "Cannot %s %q as its parent directory does not exist", verb, display)
	case errors.Is(err, ErrIsDirectory):
		return tool.Fail(tool.KindWrongType, "Cannot %s %q as it is a directory", verb, display)
	case errors.Is(err, ErrNotRegularFile):
		return tool.Fail(tool.KindWrongType, "Cannot %s %q as it is not a regular file", verb, display)
	case errors.As(err, &tooLarge):
		return tool.Fail(tool.KindTooLarge, "Cannot %s %q: %d bytes exceeds the %d byte limit", verb, display, tooLarge.Size, tooLarge.Limit)
	default:
		return tool.Fail(tool.KindIO, "Could not %s %q", verb, display)
	}
}
