// Package nvm implements the adapter for Node Version Manager (nvm).
//
// nvm is a shell function, not an executable: every invocation goes through
// the shell, sourcing the nvm.sh profile script first when we found one.
package nvm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/execx"
	"github.com/nvman/nvman/src/internal/locate"
	"github.com/nvman/nvman/src/internal/manager"
)

// Adapter implements manager.Adapter for nvm.
type Adapter struct {
	runner     execx.Runner
	override   string
	projectDir string

	available  bool
	scriptPath string // resolved nvm.sh; empty means the login shell provides nvm
}

// New creates an nvm adapter.
func New(d manager.Deps) *Adapter {
	return &Adapter{
		runner:     d.Runner,
		override:   d.ToolPath,
		projectDir: d.ProjectDir,
	}
}

// Name returns the tool identifier.
func (a *Adapter) Name() string { return "nvm" }

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string { return "Node Version Manager (nvm)" }

// ConfigFileName returns the pin artifact nvm recognizes.
func (a *Adapter) ConfigFileName() string { return ".nvmrc" }

// SupportsScope reports that nvm distinguishes global (default alias) and
// local (.nvmrc) pins.
func (a *Adapter) SupportsScope() bool { return true }

// Available reports the last Detect outcome.
func (a *Adapter) Available() bool { return a.available }

// scriptCandidates lists well-known nvm.sh locations.
func scriptCandidates() []string {
	candidates := make([]string, 0, 4)
	if dir := os.Getenv("NVM_DIR"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "nvm.sh"))
	}
	if home := locate.Home(); home != "" {
		candidates = append(candidates, filepath.Join(home, ".nvm", "nvm.sh"))
	}
	candidates = append(candidates,
		"/usr/local/opt/nvm/nvm.sh",
		"/opt/homebrew/opt/nvm/nvm.sh",
	)
	return candidates
}

// Detect probes for nvm: a configured script path first, then well-known
// nvm.sh locations, then whatever the login shell exposes.
func (a *Adapter) Detect(ctx context.Context) bool {
	if a.override != "" {
		if script, ok := locate.File(a.override); ok {
			a.scriptPath = script
			a.available = true
			return true
		}
		return false
	}

	if script, ok := locate.File(scriptCandidates()...); ok {
		a.scriptPath = script
		a.available = true
		return true
	}

	// Some setups only wire nvm into the interactive profile.
	if _, err := a.run(ctx, "--version"); err == nil {
		a.scriptPath = ""
		a.available = true
		return true
	}
	return false
}

// run invokes the nvm shell function with the given arguments.
func (a *Adapter) run(ctx context.Context, args ...string) (execx.Result, error) {
	line := "nvm " + strings.Join(args, " ")
	if a.scriptPath != "" {
		line = fmt.Sprintf(". %q; %s", a.scriptPath, line)
	}
	cmd := execx.ShellCommand(line)
	cmd.Dir = a.projectDir
	return a.runner.Run(ctx, cmd)
}

// InstalledVersions parses `nvm ls` output. Alias lines (default, lts/*)
// resolve to versions already in the list, so deduplication folds them away.
func (a *Adapter) InstalledVersions(ctx context.Context) []string {
	res, err := a.run(ctx, "ls", "--no-colors")
	if err != nil {
		return []string{}
	}
	return strictOnly(manager.ParseVersionLines(res.Stdout))
}

// CurrentVersion asks `nvm current`, falling back to the arrow marker in
// `nvm ls` when the direct query has nothing useful.
func (a *Adapter) CurrentVersion(ctx context.Context) string {
	if res, err := a.run(ctx, "current"); err == nil {
		v := manager.Normalize(strings.TrimSpace(res.Stdout))
		if v != "none" && v != "system" && manager.IsLooseVersion(v) {
			return v
		}
	}

	res, err := a.run(ctx, "ls", "--no-colors")
	if err != nil {
		return ""
	}
	return manager.CurrentFromLines(res.Stdout, "->")
}

// SetVersion switches versions. Global scope moves the default alias;
// local scope writes .nvmrc in the project directory and activates it.
func (a *Adapter) SetVersion(ctx context.Context, version string, scope manager.Scope) (*manager.SetResult, error) {
	if version == "" {
		return nil, manager.ErrEmptyVersion
	}
	version = manager.Normalize(version)

	switch scope {
	case manager.ScopeGlobal:
		if _, err := a.run(ctx, "alias", "default", version); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		if _, err := a.run(ctx, "use", version); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		return &manager.SetResult{ScopeUsed: manager.ScopeGlobal}, nil

	case manager.ScopeLocal:
		if a.projectDir == "" {
			return nil, manager.ErrNoProjectDir
		}
		pin := filepath.Join(a.projectDir, a.ConfigFileName())
		if err := os.WriteFile(pin, []byte(version+"\n"), 0o644); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		if _, err := a.run(ctx, "use", version); err != nil {
			return nil, &manager.SetVersionError{Tool: a.Name(), Version: version, Err: err}
		}
		return &manager.SetResult{ScopeUsed: manager.ScopeLocal}, nil

	default:
		return nil, errors.Newf("unknown scope %q", scope)
	}
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

var ltsNoteRe = regexp.MustCompile(`LTS: (\w+)`)

// AvailableVersions parses `nvm ls-remote --lts`, newest first, capped at
// manager.MaxAvailable.
func (a *Adapter) AvailableVersions(ctx context.Context) []manager.Available {
	res, err := a.run(ctx, "ls-remote", "--lts", "--no-colors")
	if err != nil {
		return nil
	}

	// nvm prints oldest first; walk backwards for newest-first output.
	available := make([]manager.Available, 0, manager.MaxAvailable)
	lines := strings.Split(res.Stdout, "\n")
	for i := len(lines) - 1; i >= 0 && len(available) < manager.MaxAvailable; i-- {
		line := lines[i]
		var v string
		for _, f := range strings.Fields(strings.ReplaceAll(line, "->", " ")) {
			if v = manager.VersionFromToken(f); v != "" {
				break
			}
		}
		if !manager.IsStrictVersion(v) {
			continue
		}
		lts := ""
		if m := ltsNoteRe.FindStringSubmatch(line); m != nil {
			lts = m[1]
		}
		available = append(available, manager.Available{Version: v, LTS: lts})
	}
	return available
}

// init registers the nvm adapter on package load.
func init() {
	if err := manager.Register(manager.Factory{Name: "nvm", New: func(d manager.Deps) manager.Adapter {
		return New(d)
	}}); err != nil {
		panic(fmt.Sprintf("failed to register nvm adapter: %v", err))
	}
}

// strictOnly keeps full MAJOR.MINOR.PATCH tokens, dropping stray numbers
// from alias and header lines.
func strictOnly(versions []string) []string {
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		if manager.IsStrictVersion(v) {
			out = append(out, v)
		}
	}
	return out
}
