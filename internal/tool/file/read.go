package file

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/Cyclone1070/boxed/internal/config"
	"github.com/Cyclone1070/boxed/internal/tool"
)

// ReadFileTool handles file reading operations.
type ReadFileTool struct {
	fileOps      fileReader
	pathResolver pathResolver
	config       *config.Config
	logger       *slog.Logger
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
// A nil logger falls back to slog.Default().
func NewReadFileTool(fileOps fileReader, pathResolver pathResolver, cfg *config.Config, logger *slog.Logger) *ReadFileTool {
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
	return &ReadFileTool{fileOps: fileOps, pathResolver: pathResolver, config: cfg, logger: logger}
}

func (t *ReadFileTool) Name() string { return "read_file" }

func (t *ReadFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name: t.Name(),
		Description: fmt.Sprintf(
			"Reads the contents of the specified file, constrained to the working directory. Files longer than %d characters are truncated.",
			t.config.Tools.MaxReadChars,
		),
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {
					Type:        tool.TypeString,
					Description: "The path of the file to read, relative to the working directory.",
				},
			},
			Required: []string{"path"},
		},
	}
}

func (t *ReadFileTool) PathParams() []string { return []string{"path"} }

func (t *ReadFileTool) Input() any { return &ReadFileRequest{} }

func (t *ReadFileTool) Execute(ctx context.Context, input any) tool.Result {
	req, ok := input.(*ReadFileRequest)
	if !ok {
		return tool.Fail(tool.KindInvalidArguments, "unexpected input type %T for %s", input, t.Name())
	}

	resp, err := t.Run(ctx, req)
	if err != nil {
		return failure(t.logger, t.Name(), "read", req.Path, err)
	}

	if resp.Truncated {
		return tool.Success{Payload: resp.Content + truncationMarker(req.Path, t.config.Tools.MaxReadChars)}
	}
	return tool.Success{Payload: resp.Content}
}

// Run reads at most MaxReadChars characters of a regular file in the workspace.
// Only a bounded prefix of the file is read from disk, whatever its size.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Run(ctx context.Context, req *ReadFileRequest) (*ReadFileResponse, error) {
	abs, err := t.pathResolver.Abs(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := statTarget(t.fileOps, abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrIsDirectory
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}

	maxChars := t.config.Tools.MaxReadChars
	// One rune is at most utf8.UTFMax bytes, so this prefix always holds maxChars+1
	// characters when the file has that many.
	limit := int64(utf8.UTFMax * (maxChars + 1))

	data, err := t.fileOps.ReadFileRange(abs, 0, limit)
	if err != nil {
		return nil, &ReadError{Path: abs, Cause: err}
	}

	content, truncated := truncateRunes(data, maxChars)
	return &ReadFileResponse{
		Content:      content,
		AbsolutePath: abs,
		Truncated:    truncated,
	}, nil
}

// truncateRunes returns the first n characters of data and whether anything was cut.
func truncateRunes(data []byte, n int) (string, bool) {
	count := 0
	for i := 0; i < len(data); {
		if count == n {
			return string(data[:i]), true
		}
		_, size := utf8.DecodeRune(data[i:])
		i += size
		count++
	}
	return string(data), false
}

func truncationMarker(path string, maxChars int) string {
	return fmt.Sprintf("[...File %q truncated at %d characters]", path, maxChars)
}
