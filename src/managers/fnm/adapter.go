// Package fnm implements the adapter for Fast Node Manager (fnm).
//
// fnm is driven project-locally on purpose: switching writes a
// .node-version file rather than touching machine state, so global
// requests are coerced to local scope.
package fnm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nvman/nvman/src/internal/execx"
	"github.com/nvman/nvman/src/internal/locate"
	"github.com/nvman/nvman/src/internal/manager"
)

// Adapter implements manager.Adapter for fnm.
type Adapter struct {
	runner     execx.Runner
	override   string
	projectDir string

	available bool
	path      string
}

// New creates an fnm adapter.
func New(d manager.Deps) *Adapter {
	return &Adapter{
		runner:     d.Runner,
		override:   d.ToolPath,
		projectDir: d.ProjectDir,
	}
}

// Name returns the tool identifier.
func (a *Adapter) Name() string { return "fnm" }

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string { return "Fast Node Manager (fnm)" }

// ConfigFileName returns the pin artifact fnm reads and writes.
func (a *Adapter) ConfigFileName() string { return ".node-version" }

// SupportsScope reports false: this adapter drives fnm local-only.
func (a *Adapter) SupportsScope() bool { return false }

// Available reports the last Detect outcome.
func (a *Adapter) Available() bool { return a.available }

func wellKnownDirs() []string {
	dirs := make([]string, 0, 6)
	if fnmDir := os.Getenv("FNM_DIR"); fnmDir != "" {
		dirs = append(dirs, fnmDir)
	}
	if home := locate.Home(); home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".fnm"),
			filepath.Join(home, ".local", "share", "fnm"),
			filepath.Join(home, "Library", "Application Support", "fnm"), // macOS
		)
	}
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		dirs = append(dirs, filepath.Join(localAppData, "fnm"))
	}
	return dirs
}

// Detect probes for the fnm executable.
func (a *Adapter) Detect(_ context.Context) bool {
	path, ok := locate.Executable(a.override, wellKnownDirs(), "fnm")
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
		path = "fnm"
	}
	return a.runner.Run(ctx, execx.Command{Path: path, Args: args, Dir: a.projectDir})
}

// InstalledVersions parses `fnm list`.
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

// CurrentVersion asks `fnm current`.
func (a *Adapter) CurrentVersion(ctx context.Context) string {
	res, err := a.run(ctx, "current")
	if err != nil {
		return ""
	}
	v := manager.Normalize(strings.TrimSpace(res.Stdout))
	if v == "" || v == "none" || v == "system" {
		return ""
	}
	if !manager.IsLooseVersion(v) {
		return ""
	}
	return v
}

// SetVersion pins the project: install the version if missing, write
// .node-version, then activate it. A global request is coerced to local
// with a notice.
func (a *Adapter) SetVersion(ctx context.Context, version string, scope manager.Scope) (*manager.SetResult, error) {
	if version == "" {
		return nil, manager.ErrEmptyVersion
	}
	version = manager.Normalize(version)

	if a.projectDir == "" {
		return nil, manager.ErrNoProjectDir
	}

	result := &manager.SetResult{ScopeUsed: manager.ScopeLocal}
	if scope == manager.ScopeGlobal {
		result.Notices = append(result.Notices, manager.CoercionNotice(a.Name(), scope, manager.ScopeLocal))
	}

	if !a.hasInstalled(ctx, version) {
		if err := a.InstallVersion(ctx, version); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
	}

	pin := filepath.Join(a.projectDir, a.ConfigFileName())
	if err := os.WriteFile(pin, []byte(version+"\n"), 0o644); err != nil {
		return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
	}

	if _, err := a.run(ctx, "use", version); err != nil {
		return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
	}
	return result, nil
}

func (a *Adapter) hasInstalled(ctx context.Context, version string) bool {
	for _, v := range a.InstalledVersions(ctx) {
		if manager.IsVersionMatching(version, v) {
			return true
		}
	}
	return false
}

// InstallVersion runs `fnm install`.
func (a *Adapter) InstallVersion(ctx context.Context, version string) error {
	if version == "" {
		return manager.ErrEmptyVersion
	}
	if _, err := a.run(ctx, "install", manager.Normalize(version)); err != nil {
		return &manager.InstallError{Tool: a.Name(), Version: version, Err: err}
	}
	return nil
}

var ltsParenRe = regexp.MustCompile(`\((\w+)\)`)

// AvailableVersions parses `fnm list-remote`, which prints oldest first,
// optionally suffixing LTS codenames in parentheses.
func (a *Adapter) AvailableVersions(ctx context.Context) []manager.Available {
	res, err := a.run(ctx, "list-remote")
	if err != nil {
		return nil
	}

	available := make([]manager.Available, 0, manager.MaxAvailable)
	lines := strings.Split(res.Stdout, "\n")
	for i := len(lines) - 1; i >= 0 && len(available) < manager.MaxAvailable; i-- {
		line := lines[i]
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		v := manager.VersionFromToken(fields[0])
		if !manager.IsStrictVersion(v) {
			continue
		}
		lts := ""
		if m := ltsParenRe.FindStringSubmatch(line); m != nil {
			lts = m[1]
		}
		available = append(available, manager.Available{Version: v, LTS: lts})
	}
	return available
}

// init registers the fnm adapter on package load.
func init() {
	if err := manager.Register(manager.Factory{Name: "fnm", New: func(d manager.Deps) manager.Adapter {
		return New(d)
	}}); err != nil {
		panic(fmt.Sprintf("failed to register fnm adapter: %v", err))
	}
}
