// Package manager defines the adapter contract for external Node.js version
// managers, the registry of supported tools, and the detector that picks the
// active one.
package manager

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/execx"
)

// Scope says whether a version selection applies machine-wide or to the
// current project only.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

// Sentinel errors for recoverable preconditions.
var (
	// ErrNoManager means no supported version manager was found on the host.
	ErrNoManager = errors.New("no supported Node.js version manager detected")

	// ErrEmptyVersion guards mutating operations against empty input.
	ErrEmptyVersion = errors.New("version must not be empty")

	// ErrNoProjectDir means a local-scope operation was requested without a
	// project directory to pin.
	ErrNoProjectDir = errors.New("local scope requires a project directory")
)

// Available is one entry of a tool's remote version listing.
type Available struct {
	Version string
	LTS     string // LTS codename where the tool reports one, otherwise empty
}

// SetResult reports the outcome of a SetVersion call. Notices carry
// side-channel messages such as scope coercion; they are informational,
// never errors.
type SetResult struct {
	ScopeUsed Scope
	Notices   []string
}

// Adapter is the fixed capability set implemented once per supported tool.
//
// Detect must be called (and succeed) before any other operation is invoked.
// The query operations degrade instead of failing: InstalledVersions and
// AvailableVersions return empty slices and CurrentVersion returns "" when
// the tool's output cannot be used.
type Adapter interface {
	// Name returns the tool identifier (e.g. "nvm", "fnm").
	Name() string

	// DisplayName returns the human-readable tool name.
	DisplayName() string

	// ConfigFileName returns the pin artifact this tool recognizes.
	ConfigFileName() string

	// SupportsScope reports whether the tool distinguishes global and
	// local version pins.
	SupportsScope() bool

	// Detect probes for the tool's executable. It never fails; a miss
	// leaves the adapter unavailable and mutates nothing else.
	Detect(ctx context.Context) bool

	// Available reports the result of the last Detect.
	Available() bool

	// InstalledVersions lists installed versions, deduplicated and
	// normalized. Malformed or empty tool output yields an empty list.
	InstalledVersions(ctx context.Context) []string

	// CurrentVersion returns the active version, or "" when the tool has
	// none set or the output cannot be parsed.
	CurrentVersion(ctx context.Context) string

	// SetVersion switches the active version. Adapters without scope
	// support coerce the requested scope and say so in the result notices.
	SetVersion(ctx context.Context, version string, scope Scope) (*SetResult, error)

	// InstallVersion installs a version through the tool.
	InstallVersion(ctx context.Context, version string) error

	// AvailableVersions lists at most MaxAvailable installable versions,
	// newest first. Empty on any failure.
	AvailableVersions(ctx context.Context) []Available
}

// MaxAvailable caps remote version listings.
const MaxAvailable = 20

// SetVersionError wraps a failed version switch with the tool's stderr.
type SetVersionError struct {
	Tool    string
	Version string
	Err     error
}

func (e *SetVersionError) Error() string {
	return fmt.Sprintf("%s could not switch to %s: %v", e.Tool, e.Version, e.Err)
}

func (e *SetVersionError) Unwrap() error { return e.Err }

// InstallError wraps a failed install with the tool's stderr.
type InstallError struct {
	Tool    string
	Version string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("%s could not install %s: %v", e.Tool, e.Version, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// RemoteIndex serves release listings for tools that have no remote-listing
// subcommand of their own (volta). Backed by the nodejs.org dist index.
type RemoteIndex interface {
	LatestLTS(ctx context.Context, n int) ([]Available, error)
}

// Deps is what adapter constructors receive from the detector: the process
// runner, an optional configured executable path, the project directory
// local-scope operations act on, an optional release index, and an optional
// interactive confirmer (used by pnpm on Windows before terminating
// processes that hold the node binary open).
type Deps struct {
	Runner     execx.Runner
	ToolPath   string
	ProjectDir string
	Index      RemoteIndex
	Confirm    func(prompt string) bool
}

// CoercionNotice is the standard side-channel message for adapters that
// silently map a requested scope onto the only one they support.
func CoercionNotice(tool string, requested, used Scope) string {
	return fmt.Sprintf("%s does not support %s scope; applied %s scope instead", tool, requested, used)
}
