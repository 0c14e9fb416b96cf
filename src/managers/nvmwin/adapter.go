// Package nvmwin implements the adapter for nvm-windows, the native
// Windows reimplementation of nvm. It is global-only: the tool rewrites a
// machine-wide symlink and knows nothing about per-project pins.
package nvmwin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvman/nvman/src/internal/execx"
	"github.com/nvman/nvman/src/internal/locate"
	"github.com/nvman/nvman/src/internal/manager"
)

// Adapter implements manager.Adapter for nvm-windows.
type Adapter struct {
	runner   execx.Runner
	override string

	available bool
	path      string
}

// New creates an nvm-windows adapter.
func New(d manager.Deps) *Adapter {
	return &Adapter{
		runner:   d.Runner,
		override: d.ToolPath,
	}
}

// Name returns the tool identifier.
func (a *Adapter) Name() string { return "nvm-windows" }

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string { return "nvm for Windows" }

// ConfigFileName returns the pin artifact conventionally used alongside
// nvm-windows. The tool itself does not read it.
func (a *Adapter) ConfigFileName() string { return ".nvmrc" }

// SupportsScope reports false: nvm-windows switches machine-wide only.
func (a *Adapter) SupportsScope() bool { return false }

// Available reports the last Detect outcome.
func (a *Adapter) Available() bool { return a.available }

func wellKnownDirs() []string {
	dirs := make([]string, 0, 3)
	if home := os.Getenv("NVM_HOME"); home != "" {
		dirs = append(dirs, home)
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		dirs = append(dirs, filepath.Join(appData, "nvm"))
	}
	dirs = append(dirs, `C:\Program Files\nvm`)
	return dirs
}

// Detect probes for nvm.exe.
func (a *Adapter) Detect(_ context.Context) bool {
	path, ok := locate.Executable(a.override, wellKnownDirs(), "nvm")
	if !ok {
		return false
	}
	a.path = path
	a.available = true
	return true
}

func (a *Adapter) run(ctx context.Context, args ...string) (execx.Result, error) {
	path := a.path
	if path == "" {
		path = "nvm"
	}
	return a.runner.Run(ctx, execx.Command{Path: path, Args: args})
}

// InstalledVersions parses `nvm list`, which marks the current version with
// an asterisk and an explanatory suffix.
func (a *Adapter) InstalledVersions(ctx context.Context) []string {
	res, err := a.run(ctx, "list")
	if err != nil {
		return []string{}
	}

	versions := make([]string, 0)
	for _, v := range manager.ParseVersionLines(res.Stdout) {
		if manager.IsStrictVersion(v) {
			versions = append(versions, v)
		}
	}
	return versions
}

// CurrentVersion tries `nvm current`, then falls back to the asterisk
// marker in `nvm list` for tool versions that predate the subcommand.
func (a *Adapter) CurrentVersion(ctx context.Context) string {
	if res, err := a.run(ctx, "current"); err == nil {
		v := manager.Normalize(strings.TrimSpace(res.Stdout))
		if manager.IsLooseVersion(v) {
			return v
		}
	}

	res, err := a.run(ctx, "list")
	if err != nil {
		return ""
	}
	return manager.CurrentFromLines(res.Stdout, "*")
}

// SetVersion runs `nvm use`. Local scope is coerced to global with a
// notice; the tool has no other mode.
func (a *Adapter) SetVersion(ctx context.Context, version string, scope manager.Scope) (*manager.SetResult, error) {
	if version == "" {
		return nil, manager.ErrEmptyVersion
	}
	version = manager.Normalize(version)

	result := &manager.SetResult{ScopeUsed: manager.ScopeGlobal}
	if scope == manager.ScopeLocal {
		result.Notices = append(result.Notices, manager.CoercionNotice(a.Name(), scope, manager.ScopeGlobal))
	}

	if _, err := a.run(ctx, "use", version); err != nil {
		return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
	}
	return result, nil
}

// InstallVersion runs `nvm install`.
func (a *Adapter) InstallVersion(ctx context.Context, version string) error {
	if version == "" {
		return manager.ErrEmptyVersion
	}
	if _, err := a.run(ctx, "install", manager.Normalize(version)); err != nil {
		return &manager.InstallError{Tool: a.Name(), Version: version, Err: err}
	}
	return nil
}

// AvailableVersions parses the `nvm list available` table and returns its
// LTS column, newest first.
func (a *Adapter) AvailableVersions(ctx context.Context) []manager.Available {
	res, err := a.run(ctx, "list", "available")
	if err != nil {
		return nil
	}
	return parseAvailableTable(res.Stdout)
}

// parseAvailableTable reads nvm-windows' four-column listing:
//
//	|   CURRENT    |     LTS      |  OLD STABLE  | OLD UNSTABLE |
//	|--------------|--------------|--------------|--------------|
//	|    21.5.0    |   20.10.0    |   0.12.18    |    0.9.40    |
//
// Only the LTS column is kept; rows come newest first already.
func parseAvailableTable(raw string) []manager.Available {
	available := make([]manager.Available, 0, manager.MaxAvailable)
	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		cells := strings.Split(line, "|")
		if len(cells) < 3 {
			continue
		}
		v := strings.TrimSpace(cells[2])
		if !manager.IsStrictVersion(v) {
			continue // header and separator rows
		}
		available = append(available, manager.Available{Version: v, LTS: "LTS"})
		if len(available) == manager.MaxAvailable {
			break
		}
	}
	return available
}

// init registers the nvm-windows adapter on package load.
func init() {
	if err := manager.Register(manager.Factory{Name: "nvm-windows", New: func(d manager.Deps) manager.Adapter {
		return New(d)
	}}); err != nil {
		panic(fmt.Sprintf("failed to register nvm-windows adapter: %v", err))
	}
}
