package testutil

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/execx"
)

func TestFakeRunner_MatchesBySubstring(t *testing.T) {
	r := &FakeRunner{Responses: []Response{
		{Contains: "fnm list", Result: execx.Result{Stdout: "v20.10.0\n"}},
		{Contains: "fnm current", Result: execx.Result{Stdout: "v18.19.0\n"}},
	}}

	res, err := r.Run(context.Background(), execx.Command{Path: "fnm", Args: []string{"current"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Stdout != "v18.19.0\n" {
		t.Errorf("Stdout = %q, want scripted current output", res.Stdout)
	}
}

func TestFakeRunner_UnmatchedCommandFails(t *testing.T) {
	r := &FakeRunner{}

	_, err := r.Run(context.Background(), execx.Command{Path: "volta", Args: []string{"list"}})
	var execErr *execx.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Run() error = %v, want *ExecutionError", err)
	}
	if execErr.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", execErr.ExitCode)
	}
}

func TestFakeRunner_RecordsCalls(t *testing.T) {
	r := &FakeRunner{Responses: []Response{{Contains: ""}}}

	_, _ = r.Run(context.Background(), execx.Command{Path: "mise", Args: []string{"ls", "node"}})
	_, _ = r.Run(context.Background(), execx.Command{Path: "mise", Args: []string{"current", "node"}})

	if len(r.Calls()) != 2 {
		t.Fatalf("Calls() = %d, want 2", len(r.Calls()))
	}
	if !r.CalledWith("mise ls node") {
		t.Error("CalledWith should match the first command")
	}
	if r.CalledWith("mise install") {
		t.Error("CalledWith should not match a command that never ran")
	}
}

func TestFakeRunner_FailAll(t *testing.T) {
	boom := errors.New("spawn failed")
	r := &FakeRunner{FailAll: boom, Responses: []Response{{Contains: ""}}}

	_, err := r.Run(context.Background(), execx.Command{Path: "nvm"})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want FailAll error", err)
	}
}
