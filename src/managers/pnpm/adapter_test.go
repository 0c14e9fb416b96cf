package pnpm

import (
	"context"
	"reflect"
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
		ExpectedName:           "pnpm",
		ExpectedDisplayName:    "pnpm",
		ExpectedConfigFileName: "",
		ExpectedSupportsScope:  false,
	}
	h.RunAllTests()
}

const sampleEnvList = `18.19.0
* 20.10.0
22.0.0
`

func TestInstalledVersions(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "pnpm env list", Result: execx.Result{Stdout: sampleEnvList}},
	}}
	a := New(manager.Deps{Runner: runner})

	got := a.InstalledVersions(context.Background())
	want := []string{"18.19.0", "20.10.0", "22.0.0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InstalledVersions() = %v, want %v", got, want)
	}
}

func TestCurrentVersion_FromListMarker(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "pnpm env list", Result: execx.Result{Stdout: sampleEnvList}},
	}}
	a := New(manager.Deps{Runner: runner})

	if got := a.CurrentVersion(context.Background()); got != "20.10.0" {
		t.Errorf("CurrentVersion() = %q, want 20.10.0", got)
	}
}

func TestCurrentVersion_FallsBackToNode(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "pnpm env list", Result: execx.Result{Stdout: "18.19.0\n20.10.0\n"}},
		{Contains: "node --version", Result: execx.Result{Stdout: "v20.10.0\n"}},
	}}
	a := New(manager.Deps{Runner: runner})

	if got := a.CurrentVersion(context.Background()); got != "20.10.0" {
		t.Errorf("CurrentVersion() = %q, want 20.10.0 from node", got)
	}
}

func TestSetVersion_BothScopesRunGlobal(t *testing.T) {
	for _, scope := range []manager.Scope{manager.ScopeGlobal, manager.ScopeLocal} {
		t.Run(string(scope), func(t *testing.T) {
			runner := &testutil.FakeRunner{Responses: []testutil.Response{
				{Contains: "pnpm env use --global 20.10.0"},
			}}
			a := New(manager.Deps{Runner: runner})

			res, err := a.SetVersion(context.Background(), "v20.10.0", scope)
			if err != nil {
				t.Fatalf("SetVersion() error = %v", err)
			}
			if res.ScopeUsed != manager.ScopeGlobal {
				t.Errorf("ScopeUsed = %q, want global", res.ScopeUsed)
			}
			if !runner.CalledWith("pnpm env use --global 20.10.0") {
				t.Error("expected pnpm env use --global to run")
			}
			if scope == manager.ScopeLocal && len(res.Notices) == 0 {
				t.Error("local request should produce a coercion notice")
			}
		})
	}
}

func TestSetVersion_SurfacesStderr(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "pnpm env use", Err: &execx.ExecutionError{
			Cmd: "pnpm env use --global 9.9.9", ExitCode: 1, Stderr: "ERR_PNPM_COULD_NOT_RESOLVE_NODEJS",
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

func TestInstallVersion(t *testing.T) {
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "pnpm env add --global 18.20.1"},
	}}
	a := New(manager.Deps{Runner: runner})

	if err := a.InstallVersion(context.Background(), "18.20.1"); err != nil {
		t.Fatalf("InstallVersion() error = %v", err)
	}
	if !runner.CalledWith("pnpm env add --global 18.20.1") {
		t.Error("expected pnpm env add --global to run")
	}
}

func TestAvailableVersions_NewestFirst(t *testing.T) {
	raw := "18.19.0\n20.9.0\n20.10.0\n"
	runner := &testutil.FakeRunner{Responses: []testutil.Response{
		{Contains: "pnpm env list --remote", Result: execx.Result{Stdout: raw}},
	}}
	a := New(manager.Deps{Runner: runner})

	got := a.AvailableVersions(context.Background())
	if len(got) != 3 {
		t.Fatalf("AvailableVersions() returned %d entries, want 3", len(got))
	}
	if got[0].Version != "20.10.0" {
		t.Errorf("newest entry = %q, want 20.10.0", got[0].Version)
	}
}
