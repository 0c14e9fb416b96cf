// Package testutil provides shared test helpers, chiefly a scripted
// process runner so adapter parsing can be exercised against literal
// captured tool output without spawning anything.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/nvman/nvman/src/internal/execx"
)

// Response maps a command-line substring to a canned result.
type Response struct {
	Contains string
	Result   execx.Result
	Err      error
}

// FakeRunner replays canned responses. The first response whose Contains
// string appears in the rendered command line wins; unmatched commands
// fail like a spawn error would.
type FakeRunner struct {
	Responses []Response
	FailAll   error // when set, every call fails with this error

	mu    sync.Mutex
	calls []execx.Command
}

// Run implements execx.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd execx.Command) (execx.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.FailAll != nil {
		return execx.Result{}, f.FailAll
	}

	line := cmd.String()
	for _, r := range f.Responses {
		if r.Contains == "" || strings.Contains(line, r.Contains) {
			return r.Result, r.Err
		}
	}

	return execx.Result{}, &execx.ExecutionError{Cmd: line, ExitCode: -1, Stderr: "unexpected command in test"}
}

// Calls returns every command the runner has seen, in order.
func (f *FakeRunner) Calls() []execx.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]execx.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CalledWith reports whether any recorded command line contains substr.
func (f *FakeRunner) CalledWith(substr string) bool {
	for _, c := range f.Calls() {
		if strings.Contains(c.String(), substr) {
			return true
		}
	}
	return false
}
