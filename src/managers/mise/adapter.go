// Package mise implements the adapter for mise (formerly rtx).
package mise

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

// Adapter implements manager.Adapter for mise.
type Adapter struct {
	runner     execx.Runner
	override   string
	projectDir string

	available bool
	path      string
}

// New creates a mise adapter.
func New(d manager.Deps) *Adapter {
	return &Adapter{
		runner:     d.Runner,
		override:   d.ToolPath,
		projectDir: d.ProjectDir,
	}
}

// Name returns the tool identifier.
func (a *Adapter) Name() string { return "mise" }

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string { return "mise" }

// ConfigFileName returns the pin artifact mise honors for Node.js.
func (a *Adapter) ConfigFileName() string { return ".node-version" }

// SupportsScope reports that mise separates global and project scope via
// the -g flag.
func (a *Adapter) SupportsScope() bool { return true }

// Available reports the last Detect outcome.
func (a *Adapter) Available() bool { return a.available }

func wellKnownDirs() []string {
	dirs := make([]string, 0, 5)
	if home := locate.Home(); home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".local", "share", "mise", "bin"),
		)
	}
	dirs = append(dirs, "/usr/local/bin", "/opt/homebrew/bin")
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		dirs = append(dirs, filepath.Join(localAppData, "mise", "bin"))
	}
	return dirs
}

// Detect probes for the mise executable.
func (a *Adapter) Detect(_ context.Context) bool {
	path, ok := locate.Executable(a.override, wellKnownDirs(), "mise")
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
		path = "mise"
	}
	return a.runner.Run(ctx, execx.Command{Path: path, Args: args, Dir: a.projectDir})
}

// InstalledVersions parses `mise ls node`, whose rows carry the tool name,
// version, and the config file that requested it.
func (a *Adapter) InstalledVersions(ctx context.Context) []string {
	res, err := a.run(ctx, "ls", "node")
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

// CurrentVersion asks `mise current node`.
func (a *Adapter) CurrentVersion(ctx context.Context) string {
	res, err := a.run(ctx, "current", "node")
	if err != nil {
		return ""
	}
	v := manager.Normalize(strings.TrimSpace(res.Stdout))
	if v == "" || !manager.IsLooseVersion(v) {
		return ""
	}
	return v
}

// SetVersion runs `mise use`, with -g for global scope.
func (a *Adapter) SetVersion(ctx context.Context, version string, scope manager.Scope) (*manager.SetResult, error) {
	if version == "" {
		return nil, manager.ErrEmptyVersion
	}
	version = manager.Normalize(version)
	spec := "node@" + version

	switch scope {
	case manager.ScopeGlobal:
		if _, err := a.run(ctx, "use", "-g", spec); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		return &manager.SetResult{ScopeUsed: manager.ScopeGlobal}, nil

	default:
		if a.projectDir == "" {
			return nil, manager.ErrNoProjectDir
		}
		if _, err := a.run(ctx, "use", spec); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		return &manager.SetResult{ScopeUsed: manager.ScopeLocal}, nil
	}
}

// InstallVersion runs `mise install`.
func (a *Adapter) InstallVersion(ctx context.Context, version string) error {
	if version == "" {
		return manager.ErrEmptyVersion
	}
	if _, err := a.run(ctx, "install", "node@"+manager.Normalize(version)); err != nil {
		return &manager.InstallError{Tool: a.Name(), Version: version, Err: err}
	}
	return nil
}

// AvailableVersions parses `mise ls-remote node`, oldest first, and
// returns the newest entries.
func (a *Adapter) AvailableVersions(ctx context.Context) []manager.Available {
	res, err := a.run(ctx, "ls-remote", "node")
	if err != nil {
		return nil
	}

	available := make([]manager.Available, 0, manager.MaxAvailable)
	lines := strings.Split(res.Stdout, "\n")
	for i := len(lines) - 1; i >= 0 && len(available) < manager.MaxAvailable; i-- {
		v := manager.VersionFromToken(strings.TrimSpace(lines[i]))
		if !manager.IsStrictVersion(v) {
			continue
		}
		available = append(available, manager.Available{Version: v})
	}
	return available
}

// init registers the mise adapter on package load.
func init() {
	if err := manager.Register(manager.Factory{Name: "mise", New: func(d manager.Deps) manager.Adapter {
		return New(d)
	}}); err != nil {
		panic(fmt.Sprintf("failed to register mise adapter: %v", err))
	}
}
