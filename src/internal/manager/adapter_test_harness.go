package manager

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/execx"
)

// failingRunner rejects every command, standing in for a host where the
// tool is broken or absent.
type failingRunner struct{}

func (failingRunner) Run(_ context.Context, cmd execx.Command) (execx.Result, error) {
	return execx.Result{}, &execx.ExecutionError{Cmd: cmd.String(), ExitCode: 127, Stderr: "command not found"}
}

// AdapterTestHarness runs the contract tests every adapter must satisfy.
// Adapter packages invoke it with their constructor so all tools stay
// behaviorally consistent.
type AdapterTestHarness struct {
	T   *testing.T
	New func(Deps) Adapter

	ExpectedName           string
	ExpectedDisplayName    string
	ExpectedConfigFileName string
	ExpectedSupportsScope  bool
}

// RunAllTests executes the complete contract suite.
func (h *AdapterTestHarness) RunAllTests() {
	h.T.Run("Metadata", func(t *testing.T) { h.testMetadata(t) })
	h.T.Run("QueriesDegradeOnFailure", func(t *testing.T) { h.testQueriesDegrade(t) })
	h.T.Run("EmptyVersionRejected", func(t *testing.T) { h.testEmptyVersion(t) })
}

func (h *AdapterTestHarness) testMetadata(t *testing.T) {
	a := h.New(Deps{Runner: failingRunner{}})

	if name := a.Name(); name != h.ExpectedName {
		t.Errorf("Name() = %q, want %q", name, h.ExpectedName)
	}
	if name := a.Name(); name != strings.ToLower(name) {
		t.Errorf("Name() = %q should be lowercase", name)
	}
	if dn := a.DisplayName(); dn != h.ExpectedDisplayName {
		t.Errorf("DisplayName() = %q, want %q", dn, h.ExpectedDisplayName)
	}
	if cf := a.ConfigFileName(); cf != h.ExpectedConfigFileName {
		t.Errorf("ConfigFileName() = %q, want %q", cf, h.ExpectedConfigFileName)
	}
	if ss := a.SupportsScope(); ss != h.ExpectedSupportsScope {
		t.Errorf("SupportsScope() = %v, want %v", ss, h.ExpectedSupportsScope)
	}
}

// testQueriesDegrade verifies the degradation contract: query operations
// return empty results on tool failure, never panic or error, and a failed
// probe leaves the adapter unavailable.
func (h *AdapterTestHarness) testQueriesDegrade(t *testing.T) {
	a := h.New(Deps{Runner: failingRunner{}, ToolPath: "/nonexistent/tool-for-tests"})
	ctx := context.Background()

	if a.Available() {
		t.Error("Available() = true before Detect()")
	}

	if versions := a.InstalledVersions(ctx); versions == nil {
		t.Error("InstalledVersions() = nil, want empty slice")
	} else if len(versions) != 0 {
		t.Errorf("InstalledVersions() = %v, want empty on tool failure", versions)
	}

	if current := a.CurrentVersion(ctx); current != "" {
		t.Errorf("CurrentVersion() = %q, want empty on tool failure", current)
	}

	if available := a.AvailableVersions(ctx); len(available) != 0 {
		t.Errorf("AvailableVersions() = %v, want empty on tool failure", available)
	}
}

func (h *AdapterTestHarness) testEmptyVersion(t *testing.T) {
	a := h.New(Deps{Runner: failingRunner{}})
	ctx := context.Background()

	if _, err := a.SetVersion(ctx, "", ScopeGlobal); !errors.Is(err, ErrEmptyVersion) {
		t.Errorf("SetVersion(\"\") error = %v, want ErrEmptyVersion", err)
	}
	if err := a.InstallVersion(ctx, ""); !errors.Is(err, ErrEmptyVersion) {
		t.Errorf("InstallVersion(\"\") error = %v, want ErrEmptyVersion", err)
	}
}
