// Package execx runs external version-manager commands and captures their output.
// It is the only place in nvman that spawns processes.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	goruntime "runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/constants"
)

// Command describes a single external invocation.
type Command struct {
	Path string   // executable path or name (resolved via PATH if bare)
	Args []string // arguments, not shell-interpreted
	Dir  string   // optional working directory
	Env  []string // extra KEY=VALUE entries appended to the inherited environment
}

// ShellCommand wraps a shell script line in the platform shell.
// Tools that only exist as shell functions (nvm) have to run this way.
func ShellCommand(script string) Command {
	if goruntime.GOOS == constants.OSWindows {
		return Command{Path: "cmd", Args: []string{"/C", script}}
	}
	return Command{Path: constants.ShellBash, Args: []string{"-lc", script}}
}

// String renders the command for error messages.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Result holds the captured output of a completed command.
type Result struct {
	Stdout string
	Stderr string
}

// ExecutionError reports a spawn failure or nonzero exit.
// Stderr carries the underlying tool's raw error output.
type ExecutionError struct {
	Cmd      string
	ExitCode int
	Stderr   string
}

func (e *ExecutionError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "no error output"
	}
	return fmt.Sprintf("command %s failed (exit %d): %s", e.Cmd, e.ExitCode, msg)
}

// Runner executes commands. Adapters depend on this interface so their
// parsing logic can be exercised against canned output in tests.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Local runs commands on the host. Timeout of zero means unbounded;
// a hung tool then hangs the calling operation, matching the historical
// behavior, so the command layer sets this from configuration.
type Local struct {
	Timeout time.Duration
}

// Run executes cmd to completion and returns its captured output.
// A nonzero exit or spawn failure yields an *ExecutionError.
func (l Local) Run(ctx context.Context, cmd Command) (Result, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, errors.Wrapf(ctxErr, "command %s timed out", cmd.String())
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return res, &ExecutionError{
		Cmd:      cmd.String(),
		ExitCode: exitCode,
		Stderr:   res.Stderr,
	}
}
