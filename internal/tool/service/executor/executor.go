package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/boxed/internal/config"
)

// Result represents the outcome of a command execution.
// On timeout it holds whatever output was captured before the process was stopped.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// RunWithTimeout executes a command in dir with a wall-clock timeout and graceful shutdown.
//
// A non-zero exit is reported through Result.ExitCode, not as an error.
// The returned error is a *CommandError when the process cannot start, ErrTimeout when the
// timeout fired, or ctx.Err() when the context was cancelled. In the last two cases the
// Result is still non-nil and carries the partial output.
//
// The child runs in its own process group. On timeout the group is interrupted, given the
// configured grace period, then killed. The group is always killed once the child exits so
// no descendant outlives the call.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	grace := f.config.Tools.GracefulShutdown()
	maxBytes := int(f.config.Tools.MaxCommandOutputSize)

	stdout := newCollector(maxBytes)
	stderr := newCollector(maxBytes)

	// We don't use CommandContext here because we want to handle graceful shutdown
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Bounds Wait when a detached descendant keeps the output pipes open.
	cmd.WaitDelay = grace
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr, execErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		killGroup(cmd)
		waitErr = <-done
		execErr = ctx.Err()
	case <-timer.C:
		interruptGroup(cmd)
		select {
		case waitErr = <-done:
		case <-time.After(grace):
			killGroup(cmd)
			waitErr = <-done
		}
		execErr = ErrTimeout
	}

	killGroup(cmd)

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode(waitErr),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}
	if execErr != nil {
		res.ExitCode = -1
	}
	return res, execErr
}

func exitCode(err error) int {
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
