package execx

import (
	"context"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func TestLocal_Run_CapturesStdout(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("uses bash")
	}

	res, err := Local{}.Run(context.Background(), ShellCommand("echo hello"))
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if got := strings.TrimSpace(res.Stdout); got != "hello" {
		t.Errorf("Stdout = %q, want %q", got, "hello")
	}
}

func TestLocal_Run_NonzeroExit(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("uses bash")
	}

	_, err := Local{}.Run(context.Background(), ShellCommand("echo bad >&2; exit 3"))
	if err == nil {
		t.Fatal("Run() error = nil, want *ExecutionError")
	}

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Run() error = %T, want *ExecutionError", err)
	}
	if execErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", execErr.ExitCode)
	}
	if !strings.Contains(execErr.Stderr, "bad") {
		t.Errorf("Stderr = %q, want it to contain tool output", execErr.Stderr)
	}
	if !strings.Contains(execErr.Error(), "bad") {
		t.Errorf("Error() = %q, should surface stderr", execErr.Error())
	}
}

func TestLocal_Run_SpawnFailure(t *testing.T) {
	_, err := Local{}.Run(context.Background(), Command{Path: "nvman-does-not-exist-xyz"})
	if err == nil {
		t.Fatal("Run() error = nil, want spawn failure")
	}

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Run() error = %T, want *ExecutionError", err)
	}
	if execErr.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for spawn failure", execErr.ExitCode)
	}
}

func TestLocal_Run_Timeout(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("uses bash")
	}

	start := time.Now()
	_, err := Local{Timeout: 100 * time.Millisecond}.Run(context.Background(), ShellCommand("sleep 5"))
	if err == nil {
		t.Fatal("Run() error = nil, want timeout")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestLocal_Run_WorkingDirectory(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("uses bash")
	}

	dir := t.TempDir()
	cmd := ShellCommand("pwd")
	cmd.Dir = dir

	res, err := Local{}.Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if got := strings.TrimSpace(res.Stdout); !strings.HasSuffix(got, filepath.Base(dir)) {
		t.Errorf("pwd = %q, want suffix %q", got, filepath.Base(dir))
	}
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Path: "fnm", Args: []string{"use", "20.10.0"}}
	if got := cmd.String(); got != "fnm use 20.10.0" {
		t.Errorf("String() = %q, want %q", got, "fnm use 20.10.0")
	}
}
