package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Cyclone1070/boxed/internal/config"
	"github.com/Cyclone1070/boxed/internal/tool"
	"github.com/Cyclone1070/boxed/internal/tool/service/executor"
	"github.com/Cyclone1070/boxed/internal/tool/service/path"
)

// RunScriptTool executes script files from the workspace with a configured interpreter.
type RunScriptTool struct {
	fileOps         fileStatter
	commandExecutor commandExecutor
	pathResolver    pathResolver
	config          *config.Config
	logger          *slog.Logger
}

// NewRunScriptTool creates a new RunScriptTool with injected dependencies.
// A nil logger falls back to slog.Default().
func NewRunScriptTool(
	fileOps fileStatter,
	commandExecutor commandExecutor,
	pathResolver pathResolver,
	cfg *config.Config,
	logger *slog.Logger,
) *RunScriptTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if commandExecutor == nil {
		panic("commandExecutor is required")
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
	return &RunScriptTool{
		fileOps:         fileOps,
		commandExecutor: commandExecutor,
		pathResolver:    pathResolver,
		config:          cfg,
		logger:          logger,
	}
}

func (t *RunScriptTool) Name() string { return "run_script" }

func (t *RunScriptTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name: t.Name(),
		Description: fmt.Sprintf(
			"Executes a script file (%s) with optional arguments, constrained to the working directory. Returns its standard output and standard error.",
			strings.Join(t.config.Tools.ScriptExtensions(), ", "),
		),
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {
					Type:        tool.TypeString,
					Description: "The path of the script to execute, relative to the working directory.",
				},
				"args": {
					Type:        tool.TypeArray,
					Description: "Optional command-line arguments passed to the script.",
					Items:       &tool.Schema{Type: tool.TypeString},
				},
			},
			Required: []string{"path"},
		},
	}
}

func (t *RunScriptTool) PathParams() []string { return []string{"path"} }

func (t *RunScriptTool) Input() any { return &RunScriptRequest{} }

func (t *RunScriptTool) Execute(ctx context.Context, input any) tool.Result {
	req, ok := input.(*RunScriptRequest)
	if !ok {
		return tool.Fail(tool.KindInvalidArguments, "unexpected input type %T for %s", input, t.Name())
	}

	resp, err := t.Run(ctx, req)
	if err != nil {
		return t.failure(req.Path, resp, err)
	}
	return tool.Success{Payload: resp.Format()}
}

// Run executes the script with the workspace root as working directory.
// A non-zero exit is not an error. On timeout or cancellation the partial response is
// returned together with the error.
func (t *RunScriptTool) Run(ctx context.Context, req *RunScriptRequest) (*RunScriptResponse, error) {
	abs, err := t.pathResolver.Abs(req.Path)
	if err != nil {
		return nil, err
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, abs)
		}
		return nil, &StatError{Path: abs, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}

	interpreter, ok := t.config.Tools.InterpreterFor(abs)
	if !ok {
		return nil, ErrNotScript
	}

	rel, err := t.pathResolver.Rel(abs)
	if err != nil {
		return nil, err
	}

	command := make([]string, 0, len(interpreter)+1+len(req.Args))
	command = append(command, interpreter...)
	command = append(command, rel)
	command = append(command, req.Args...)

	timeout := t.config.Tools.ScriptTimeout()
	result, execErr := t.commandExecutor.RunWithTimeout(ctx, command, t.pathResolver.Root(), scriptEnv(os.Environ()), timeout)
	if result == nil {
		result = &executor.Result{ExitCode: -1}
	}

	resp := &RunScriptResponse{
		Stdout:    result.Stdout,
		Stderr:    result.Stderr,
		ExitCode:  result.ExitCode,
		Truncated: result.Truncated,
	}
	if execErr != nil {
		return resp, execErr
	}
	return resp, nil
}

func (t *RunScriptTool) failure(display string, resp *RunScriptResponse, err error) tool.Failure {
	t.logger.Debug("run_script failed", "path", display, "error", err)

	var cmdErr *executor.CommandError
	switch {
	case errors.Is(err, path.ErrOutsideWorkspace):
		return tool.Fail(tool.KindOutsideRoot, "Cannot execute %q as it is outside the permitted working directory", display)
	case errors.Is(err, ErrFileMissing):
		return tool.Fail(tool.KindNotFound, "File %q not found", display)
	case errors.Is(err, ErrNotRegularFile):
		return tool.Fail(tool.KindWrongType, "%q is not a regular file", display)
	case errors.Is(err, ErrNotScript):
		return tool.Fail(tool.KindNotScript, "%q is not a script file (supported: %s)", display,
			strings.Join(t.config.Tools.ScriptExtensions(), ", "))
	case errors.Is(err, executor.ErrTimeout):
		msg := fmt.Sprintf("Script %q timed out after %s", display, t.config.Tools.ScriptTimeout().Round(time.Second))
		if resp != nil {
			msg += "\n" + resp.Format()
		}
		return tool.Fail(tool.KindTimeout, "%s", msg)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return tool.Fail(tool.KindExecution, "Script %q was cancelled", display)
	case errors.As(err, &cmdErr):
		return tool.Fail(tool.KindExecution, "Could not start interpreter %q for %q", cmdErr.Cmd, display)
	default:
		return tool.Fail(tool.KindExecution, "Could not execute %q", display)
	}
}
