package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/boxed/internal/config"
	"github.com/Cyclone1070/boxed/internal/tool"
)

// WriteFileTool handles file writing operations.
type WriteFileTool struct {
	fileOps      fileWriter
	pathResolver pathResolver
	config       *config.Config
	logger       *slog.Logger
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
// A nil logger falls back to slog.Default().
func NewWriteFileTool(fileOps fileWriter, pathResolver pathResolver, cfg *config.Config, logger *slog.Logger) *WriteFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WriteFileTool{fileOps: fileOps, pathResolver: pathResolver, config: cfg, logger: logger}
}

func (t *WriteFileTool) Name() string { return "write_file" }

func (t *WriteFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.Name(),
		Description: "Writes content to a file, creating it or overwriting it if it exists, constrained to the working directory. The parent directory must already exist.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {
					Type:        tool.TypeString,
					Description: "The path of the file to write, relative to the working directory.",
				},
				"content": {
					Type:        tool.TypeString,
					Description: "The full content to write to the file.",
				},
			},
			Required: []string{"path", "content"},
		},
	}
}

func (t *WriteFileTool) PathParams() []string { return []string{"path"} }

func (t *WriteFileTool) Input() any { return &WriteFileRequest{} }

func (t *WriteFileTool) Execute(ctx context.Context, input any) tool.Result {
	req, ok := input.(*WriteFileRequest)
	if !ok {
		return tool.Fail(tool.KindInvalidArguments, "unexpected input type %T for %s", input, t.Name())
	}

	resp, err := t.Run(ctx, req)
	if err != nil {
		return failure(t.logger, t.Name(), "write to", req.Path, err)
	}
	return tool.Succeed("Successfully wrote to %q (%d bytes written)", req.Path, resp.BytesWritten)
}

// Run creates or atomically replaces a file in the workspace.
// Directories are never overwritten and missing parents are never created.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *WriteFileTool) Run(ctx context.Context, req *WriteFileRequest) (*WriteFileResponse, error) {
	abs, err := t.pathResolver.Abs(req.Path)
	if err != nil {
		return nil, err
	}

	content := []byte(req.Content)
	if limit := t.config.Tools.MaxFileSize; int64(len(content)) > limit {
		return nil, &TooLargeError{Path: abs, Size: int64(len(content)), Limit: limit}
	}

	perm := os.FileMode(0o644)
	created := true

	info, err := statTarget(t.fileOps, abs)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, ErrIsDirectory
		}
		if !info.Mode().IsRegular() {
			return nil, ErrNotRegularFile
		}
		perm = info.Mode().Perm()
		created = false
	case errors.Is(err, ErrFileMissing):
		parent, perr := t.fileOps.Stat(filepath.Dir(abs))
		if perr != nil || !parent.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrParentMissing, filepath.Dir(abs))
		}
	default:
		return nil, err
	}

	if err := t.fileOps.WriteFileAtomic(abs, content, perm); err != nil {
		return nil, &WriteError{Path: abs, Cause: err}
	}

	return &WriteFileResponse{
		AbsolutePath: abs,
		BytesWritten: len(content),
		Created:      created,
	}, nil
}
