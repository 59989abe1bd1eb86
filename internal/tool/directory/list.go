package directory

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/Cyclone1070/boxed/internal/tool"
	"github.com/Cyclone1070/boxed/internal/tool/service/path"
)

// ListDirectoryTool lists the immediate children of a directory inside the workspace.
type ListDirectoryTool struct {
	fileOps      dirLister
	pathResolver pathResolver
	logger       *slog.Logger
}

// NewListDirectoryTool creates a new ListDirectoryTool with injected dependencies.
func NewListDirectoryTool(fileOps dirLister, pathResolver pathResolver, logger *slog.Logger) *ListDirectoryTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ListDirectoryTool{fileOps: fileOps, pathResolver: pathResolver, logger: logger}
}

func (t *ListDirectoryTool) Name() string { return "list_directory" }

func (t *ListDirectoryTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.Name(),
		Description: "Lists files in the specified directory along with their sizes, constrained to the working directory.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {
					Type:        tool.TypeString,
					Description: "The directory to list files from, relative to the working directory. If not provided, lists files in the working directory itself.",
				},
			},
		},
	}
}

func (t *ListDirectoryTool) PathParams() []string { return []string{"path"} }

func (t *ListDirectoryTool) Input() any { return &ListDirectoryRequest{} }

func (t *ListDirectoryTool) Execute(ctx context.Context, input any) tool.Result {
	req, ok := input.(*ListDirectoryRequest)
	if !ok {
		return tool.Fail(tool.KindInvalidArguments, "unexpected input type %T for %s", input, t.Name())
	}

	resp, err := t.Run(ctx, req)
	if err != nil {
		return t.failure(req.String(), err)
	}
	return tool.Success{Payload: resp.Format()}
}

// Run lists the requested directory. An empty path means the workspace root.
func (t *ListDirectoryTool) Run(ctx context.Context, req *ListDirectoryRequest) (*ListDirectoryResponse, error) {
	abs, err := t.pathResolver.Abs(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		return nil, &StatError{Path: abs, Cause: err}
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory
	}

	infos, err := t.fileOps.ListDir(abs)
	if err != nil {
		return nil, &ListDirError{Path: abs, Cause: err}
	}

	entries := make([]DirectoryEntry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, DirectoryEntry{Name: fi.Name(), Size: fi.Size(), IsDir: fi.IsDir()})
	}

	return &ListDirectoryResponse{Path: abs, Entries: entries}, nil
}

func (t *ListDirectoryTool) failure(display string, err error) tool.Failure {
	t.logger.Debug("list_directory failed", "path", display, "error", err)

	var statErr *StatError
	switch {
	case errors.Is(err, path.ErrOutsideWorkspace):
		return tool.Fail(tool.KindOutsideRoot, "Cannot list %q as it is outside the permitted working directory", display)
	case errors.As(err, &statErr) && errors.Is(err, os.ErrNotExist):
		return tool.Fail(tool.KindNotFound, "Directory %q does not exist", display)
	case errors.Is(err, ErrNotADirectory):
		return tool.Fail(tool.KindWrongType, "%q is not a directory", display)
	default:
		return tool.Fail(tool.KindIO, "Could not list %q", display)
	}
}
