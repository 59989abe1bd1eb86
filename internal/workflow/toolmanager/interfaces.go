package toolmanager

import (
	"context"

	"github.com/Cyclone1070/boxed/internal/tool"
)

// toolImpl defines the interface for individual tools.
// Request structs should implement fmt.Stringer for display.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// PathParams names the arguments that hold workspace paths.
	// They are checked against the workspace root before the tool sees them.
	PathParams() []string

	// Input returns a pointer to the input struct (e.g., &ReadFileRequest{}).
	Input() any

	// Execute runs the tool with typed input. Every outcome, failures included, is a tool.Result.
	Execute(ctx context.Context, input any) tool.Result
}

// pathGuard decides whether a candidate path stays inside the workspace.
type pathGuard interface {
	Contains(candidate string) bool
}
