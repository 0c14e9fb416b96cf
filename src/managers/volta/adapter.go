// Package volta implements the adapter for Volta.
//
// Volta has no remote-listing subcommand; available versions come from the
// nodejs.org release index. Local scope is `volta pin`, which records the
// version in the project manifest's volta.node field.
package volta

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

// Adapter implements manager.Adapter for Volta.
type Adapter struct {
	runner     execx.Runner
	override   string
	projectDir string
	index      manager.RemoteIndex

	available bool
	path      string
}

// New creates a Volta adapter.
func New(d manager.Deps) *Adapter {
	return &Adapter{
		runner:     d.Runner,
		override:   d.ToolPath,
		projectDir: d.ProjectDir,
		index:      d.Index,
	}
}

// Name returns the tool identifier.
func (a *Adapter) Name() string { return "volta" }

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string { return "Volta" }

// ConfigFileName returns the manifest Volta pins into.
func (a *Adapter) ConfigFileName() string { return "package.json" }

// SupportsScope reports that Volta distinguishes pinned (local) and
// default (global) versions.
func (a *Adapter) SupportsScope() bool { return true }

// Available reports the last Detect outcome.
func (a *Adapter) Available() bool { return a.available }

func wellKnownDirs() []string {
	dirs := make([]string, 0, 4)
	if voltaHome := os.Getenv("VOLTA_HOME"); voltaHome != "" {
		dirs = append(dirs, filepath.Join(voltaHome, "bin"))
	}
	if home := locate.Home(); home != "" {
		dirs = append(dirs, filepath.Join(home, ".volta", "bin"))
	}
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		dirs = append(dirs, filepath.Join(localAppData, "Volta", "bin"))
	}
	dirs = append(dirs, `C:\Program Files\Volta`)
	return dirs
}

// Detect probes for the volta executable.
func (a *Adapter) Detect(_ context.Context) bool {
	path, ok := locate.Executable(a.override, wellKnownDirs(), "volta")
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
		path = "volta"
	}
	return a.runner.Run(ctx, execx.Command{Path: path, Args: args, Dir: a.projectDir})
}

func (a *Adapter) listPlain(ctx context.Context) (string, error) {
	res, err := a.run(ctx, "list", "node", "--format", "plain")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// InstalledVersions parses `volta list node --format plain`, whose rows
// look like "runtime node@20.10.0 (default)".
func (a *Adapter) InstalledVersions(ctx context.Context) []string {
	raw, err := a.listPlain(ctx)
	if err != nil {
		return []string{}
	}

	versions := make([]string, 0)
	for _, v := range manager.ParseVersionLines(raw) {
		if manager.IsStrictVersion(v) {
			versions = append(versions, v)
		}
	}
	return versions
}

// CurrentVersion prefers the project-pinned row, then the default row,
// then falls back to asking the managed runtime itself.
func (a *Adapter) CurrentVersion(ctx context.Context) string {
	if raw, err := a.listPlain(ctx); err == nil {
		if v := currentFromPlainList(raw); v != "" {
			return v
		}
	}

	// No volta-visible selection; the node shim may still resolve one.
	res, err := a.runner.Run(ctx, execx.Command{Path: "node", Args: []string{"--version"}, Dir: a.projectDir})
	if err != nil {
		return ""
	}
	v := manager.Normalize(strings.TrimSpace(res.Stdout))
	if !manager.IsLooseVersion(v) {
		return ""
	}
	return v
}

// currentFromPlainList picks the active row out of plain-format output:
// "(current" beats "(default)", which beats nothing.
func currentFromPlainList(raw string) string {
	var defaultVersion string
	for _, line := range strings.Split(raw, "\n") {
		v := versionFromRow(line)
		if v == "" {
			continue
		}
		if strings.Contains(line, "(current") {
			return v
		}
		if strings.Contains(line, "(default)") && defaultVersion == "" {
			defaultVersion = v
		}
	}
	return defaultVersion
}

func versionFromRow(line string) string {
	for _, f := range strings.Fields(line) {
		if v := manager.VersionFromToken(f); manager.IsStrictVersion(v) {
			return v
		}
	}
	return ""
}

// SetVersion pins the project manifest for local scope and installs the
// version as the machine default for global scope.
func (a *Adapter) SetVersion(ctx context.Context, version string, scope manager.Scope) (*manager.SetResult, error) {
	if version == "" {
		return nil, manager.ErrEmptyVersion
	}
	version = manager.Normalize(version)
	spec := "node@" + version

	switch scope {
	case manager.ScopeLocal:
		if a.projectDir == "" {
			return nil, manager.ErrNoProjectDir
		}
		if _, err := a.run(ctx, "pin", spec); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		return &manager.SetResult{ScopeUsed: manager.ScopeLocal}, nil

	default:
		if _, err := a.run(ctx, "install", spec); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		return &manager.SetResult{ScopeUsed: manager.ScopeGlobal}, nil
	}
}

// InstallVersion fetches a version. Volta has no install-without-activate,
// so this sets the default too; that is the tool's own contract.
func (a *Adapter) InstallVersion(ctx context.Context, version string) error {
	if version == "" {
		return manager.ErrEmptyVersion
	}
	if _, err := a.run(ctx, "install", "node@"+manager.Normalize(version)); err != nil {
		return &manager.InstallError{Tool: a.Name(), Version: version, Err: err}
	}
	return nil
}

// AvailableVersions serves the release index, since Volta cannot list
// remote versions itself.
func (a *Adapter) AvailableVersions(ctx context.Context) []manager.Available {
	if a.index == nil {
		return nil
	}
	entries, err := a.index.LatestLTS(ctx, manager.MaxAvailable)
	if err != nil {
		return nil
	}
	return entries
}

// init registers the volta adapter on package load.
func init() {
	if err := manager.Register(manager.Factory{Name: "volta", New: func(d manager.Deps) manager.Adapter {
		return New(d)
	}}); err != nil {
		panic(fmt.Sprintf("failed to register volta adapter: %v", err))
	}
}
