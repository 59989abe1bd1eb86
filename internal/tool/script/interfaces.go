package script

import (
	"context"
	"os"
	"time"

	"github.com/Cyclone1070/boxed/internal/tool/service/executor"
)

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Rel(path string) (string, error)
	Root() string
}

// fileStatter defines the filesystem operation needed to vet a script before running it.
type fileStatter interface {
	Stat(path string) (os.FileInfo, error)
}

// commandExecutor defines the interface for executing script processes.
type commandExecutor interface {
	RunWithTimeout(ctx context.Context, cmd []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}
