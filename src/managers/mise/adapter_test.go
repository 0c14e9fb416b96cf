package mise

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/execx"
	"github.com/nvman/nvman/src/internal/manager"
	"github.com/nvman/nvman/src/internal/testutil"
)

func TestAdapterContract(t *testing.T) {
	h := &manager.AdapterTestHarness{
		T:                      t,
		New:                    func(d manager.Deps) manager.Adapter { return New(d) },
		ExpectedName:           "mise",
		ExpectedDisplayName:    "mise",
		ExpectedConfigFileName: ".node-version",
		ExpectedSupportsScope:  true,
	}
	h.RunAllTests()
}

const sampleLs = `node    18.19.0
node    20.10.0    ~/.config/mise/config.toml    lts
`

func TestInstalledVersions(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "mise ls node", Result: execx.Result{Stdout: sampleLs}},
	}}
	a := New(manager.Deps{Runner: runner})

	got := a.InstalledVersions(context.Background())
	want := []string{"18.19.0", "20.10.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InstalledVersions() = %v, want %v", got, want)
	}
}

func TestCurrentVersion(t *testing.T) {
	tests := []struct {
		name     string
		stdout   string
		expected string
	}{
		{name: "plain version", stdout: "20.10.0\n", expected: "20.10.0"},
		{name: "v prefixed", stdout: "v20.10.0\n", expected: "20.10.0"},
		{name: "nothing active", stdout: "\n", expected: ""},
		{name: "garbage", stdout: "mise ERROR no version set\n", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &testutil.FakeRunner{Responses: []testutil.Response{
				{Contains: "mise current node", Result: execx.Result{Stdout: tt.stdout}},
			}}
			a := New(manager.Deps{Runner: runner})

			if got := a.CurrentVersion(context.Background()); got != tt.expected {
				t.Errorf("CurrentVersion() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSetVersion_GlobalUsesDashG(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "mise use -g node@20.10.0"},
	}}
	a := New(manager.Deps{Runner: runner})

	res, err := a.SetVersion(context.Background(), "v20.10.0", manager.ScopeGlobal)
	if err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	if res.ScopeUsed != manager.ScopeGlobal {
		t.Errorf("ScopeUsed = %q, want global", res.ScopeUsed)
	}
	if !runner.CalledWith("mise use -g node@20.10.0") {
		t.Error("expected mise use -g to run")
	}
}

func TestSetVersion_LocalRunsInProject(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "mise use node@18.20.1"},
	}}
	a := New(manager.Deps{Runner: runner, ProjectDir: t.TempDir()})

	res, err := a.SetVersion(context.Background(), "18.20.1", manager.ScopeLocal)
	if err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	if res.ScopeUsed != manager.ScopeLocal {
		t.Errorf("ScopeUsed = %q, want local", res.ScopeUsed)
	}
}

func TestSetVersion_LocalWithoutProject(t *testing.T) {
	a := New(manager.Deps{Runner: &testutil.FakeRunner{}})

	_, err := a.SetVersion(context.Background(), "20.10.0", manager.ScopeLocal)
	if !errors.Is(err, manager.ErrNoProjectDir) {
		t.Errorf("SetVersion() error = %v, want ErrNoProjectDir", err)
	}
}

func TestSetVersion_SurfacesStderr(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "mise use", Err: &execx.ExecutionError{
			Cmd: "mise use -g node@9.9.9", ExitCode: 1, Stderr: "mise ERROR version not found",
		}},
	}}
	a := New(manager.Deps{Runner: runner})

	_, err := a.SetVersion(context.Background(), "9.9.9", manager.ScopeGlobal)
	var setErr *manager.SetVersionError
	if !errors.As(err, &setErr) {
		t.Fatalf("SetVersion() error = %v, want *SetVersionError", err)
	}
	var execErr *execx.ExecutionError
	if !errors.As(err, &execErr) || execErr.Stderr == "" {
		t.Error("tool stderr should be preserved through the error chain")
	}
}

func TestAvailableVersions_NewestFirstCapped(t *testing.T) {
	var raw strings.Builder
	for minor := 1; minor <= 25; minor++ {
		fmt.Fprintf(&raw, "20.%d.0\n", minor)
	}
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "mise ls-remote node", Result: execx.Result{Stdout: raw.String()}},
	}}
	a := New(manager.Deps{Runner: runner})

	got := a.AvailableVersions(context.Background())
	if len(got) != manager.MaxAvailable {
		t.Fatalf("AvailableVersions() returned %d entries, want %d", len(got), manager.MaxAvailable)
	}
	if got[0].Version != "20.25.0" {
		t.Errorf("newest entry = %q, want 20.25.0", got[0].Version)
	}
}
