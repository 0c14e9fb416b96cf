// Package pnpm implements the adapter for pnpm's built-in Node.js
// management (`pnpm env`).
//
// pnpm env only manages a machine-wide Node.js, so local requests are
// coerced to global scope. On Windows a running node.exe keeps the
// install directory locked; before switching, the adapter offers to
// terminate those processes.
package pnpm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nvman/nvman/src/internal/execx"
	"github.com/nvman/nvman/src/internal/locate"
	"github.com/nvman/nvman/src/internal/manager"
)

// Adapter implements manager.Adapter for pnpm env.
type Adapter struct {
	runner     execx.Runner
	override   string
	projectDir string
	confirm    func(prompt string) bool

	available bool
	path      string
}

// New creates a pnpm adapter.
func New(d manager.Deps) *Adapter {
	return &Adapter{
		runner:     d.Runner,
		override:   d.ToolPath,
		projectDir: d.ProjectDir,
		confirm:    d.Confirm,
	}
}

// Name returns the tool identifier.
func (a *Adapter) Name() string { return "pnpm" }

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string { return "pnpm" }

// ConfigFileName returns "": pnpm env does not read project pin files.
func (a *Adapter) ConfigFileName() string { return "" }

// SupportsScope reports false: pnpm env is global-only.
func (a *Adapter) SupportsScope() bool { return false }

// Available reports the last Detect outcome.
func (a *Adapter) Available() bool { return a.available }

func wellKnownDirs() []string {
	dirs := make([]string, 0, 4)
	if pnpmHome := os.Getenv("PNPM_HOME"); pnpmHome != "" {
		dirs = append(dirs, pnpmHome)
	}
	if home := locate.Home(); home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "pnpm"),
			filepath.Join(home, "Library", "pnpm"), // macOS
		)
	}
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		dirs = append(dirs, filepath.Join(localAppData, "pnpm"))
	}
	return dirs
}

// Detect probes for the pnpm executable.
func (a *Adapter) Detect(_ context.Context) bool {
	path, ok := locate.Executable(a.override, wellKnownDirs(), "pnpm")
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
		path = "pnpm"
	}
	return a.runner.Run(ctx, execx.Command{Path: path, Args: args, Dir: a.projectDir})
}

// InstalledVersions parses `pnpm env list`.
func (a *Adapter) InstalledVersions(ctx context.Context) []string {
	res, err := a.run(ctx, "env", "list")
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

// CurrentVersion reads the "*" marker from `pnpm env list`, falling back
// to asking the node on PATH.
func (a *Adapter) CurrentVersion(ctx context.Context) string {
	if res, err := a.run(ctx, "env", "list"); err == nil {
		if v := manager.CurrentFromLines(res.Stdout, "*"); v != "" {
			return v
		}
	}

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

// SetVersion runs `pnpm env use --global`. Local requests are coerced to
// global with a notice. On Windows, running node.exe processes lock the
// destination, so the user is offered a chance to terminate them first.
func (a *Adapter) SetVersion(ctx context.Context, version string, scope manager.Scope) (*manager.SetResult, error) {
	if version == "" {
		return nil, manager.ErrEmptyVersion
	}
	version = manager.Normalize(version)

	result := &manager.SetResult{ScopeUsed: manager.ScopeGlobal}
	if scope == manager.ScopeLocal {
		result.Notices = append(result.Notices, manager.CoercionNotice(a.Name(), scope, manager.ScopeGlobal))
	}

	if runtime.GOOS == "windows" {
		if notice := a.releaseNodeProcesses(); notice != "" {
			result.Notices = append(result.Notices, notice)
		}
	}

	if _, err := a.run(ctx, "env", "use", "--global", version); err != nil {
		return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
	}
	return result, nil
}

// releaseNodeProcesses finds running node.exe processes and, with the
// user's consent, terminates them. Returns a notice for the caller when
// anything happened.
func (a *Adapter) releaseNodeProcesses() string {
	pids, err := runningNodeProcesses()
	if err != nil || len(pids) == 0 {
		return ""
	}
	prompt := fmt.Sprintf("%d node.exe process(es) are running and may block the switch. Terminate them?", len(pids))
	if a.confirm == nil || !a.confirm(prompt) {
		return fmt.Sprintf("left %d node.exe process(es) running; the switch may fail until they exit", len(pids))
	}
	terminated := 0
	for _, pid := range pids {
		if terminateProcess(pid) == nil {
			terminated++
		}
	}
	return fmt.Sprintf("terminated %d node.exe process(es) before switching", terminated)
}

// InstallVersion runs `pnpm env add --global`, which fetches a version
// without activating it.
func (a *Adapter) InstallVersion(ctx context.Context, version string) error {
	if version == "" {
		return manager.ErrEmptyVersion
	}
	if _, err := a.run(ctx, "env", "add", "--global", manager.Normalize(version)); err != nil {
		return &manager.InstallError{Tool: a.Name(), Version: version, Err: err}
	}
	return nil
}

// AvailableVersions parses `pnpm env list --remote`, oldest first.
func (a *Adapter) AvailableVersions(ctx context.Context) []manager.Available {
	res, err := a.run(ctx, "env", "list", "--remote")
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

// init registers the pnpm adapter on package load.
func init() {
	if err := manager.Register(manager.Factory{Name: "pnpm", New: func(d manager.Deps) manager.Adapter {
		return New(d)
	}}); err != nil {
		panic(fmt.Sprintf("failed to register pnpm adapter: %v", err))
	}
}
