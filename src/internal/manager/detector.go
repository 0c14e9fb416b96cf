package manager

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/constants"
)

// ProbeOutcome records whether one adapter was probed and what it reported.
type ProbeOutcome struct {
	Name      string
	Probed    bool
	Available bool
}

// DetectionResult is the outcome of one detection cycle. Each cycle
// supersedes the previous one; results are never merged.
type DetectionResult struct {
	Probes     []ProbeOutcome
	ActiveName string // empty when no manager was found
}

// Detector resolves which version manager is active. It is an explicit
// value threaded through the command layer rather than a process-wide
// singleton, so tests can run independent detection contexts.
//
// The detector has two states: undetected and detected. Mutating adapter
// operations are serialized per adapter through Exclusive, closing the
// race between overlapping user-triggered switches.
type Detector struct {
	mu       sync.Mutex
	adapters []Adapter
	byName   map[string]Adapter
	active   Adapter
	result   *DetectionResult
	opLocks  map[string]*sync.Mutex
}

// NewDetector creates a detector over the given adapters, in priority order.
func NewDetector(adapters []Adapter) *Detector {
	byName := make(map[string]Adapter, len(adapters))
	opLocks := make(map[string]*sync.Mutex, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
		opLocks[a.Name()] = &sync.Mutex{}
	}
	return &Detector{
		adapters: adapters,
		byName:   byName,
		opLocks:  opLocks,
	}
}

// DetectAll runs one detection cycle. A preferred tool name, when set and
// detectable, overrides priority order entirely. Otherwise the first
// adapter whose probe succeeds becomes active. Finding nothing is a
// recoverable condition reported through the result, not an error.
func (d *Detector) DetectAll(ctx context.Context, preferred string) *DetectionResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	result := &DetectionResult{}
	d.active = nil

	if preferred != "" && preferred != "auto" {
		if a, ok := d.byName[preferred]; ok {
			available := a.Detect(ctx)
			result.Probes = append(result.Probes, ProbeOutcome{Name: a.Name(), Probed: true, Available: available})
			if available {
				d.active = a
				result.ActiveName = a.Name()
				d.result = result
				return result
			}
		}
	}

	for _, a := range d.adapters {
		if preferred != "" && preferred != "auto" && a.Name() == preferred {
			continue // already probed above
		}
		if d.active != nil {
			result.Probes = append(result.Probes, ProbeOutcome{Name: a.Name()})
			continue
		}
		available := a.Detect(ctx)
		result.Probes = append(result.Probes, ProbeOutcome{Name: a.Name(), Probed: true, Available: available})
		if available {
			d.active = a
			result.ActiveName = a.Name()
		}
	}

	d.result = result
	return result
}

// Active returns the active adapter, or false when the detector is in the
// undetected state.
func (d *Detector) Active() (Adapter, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active, d.active != nil
}

// Result returns the last detection result, or nil before any cycle ran.
func (d *Detector) Result() *DetectionResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// SwitchManager manually overrides the active adapter. The named adapter is
// re-probed before the switch commits; on failure the previous active
// adapter stays in place.
func (d *Detector) SwitchManager(ctx context.Context, name string) error {
	d.mu.Lock()
	a, ok := d.byName[name]
	d.mu.Unlock()
	if !ok {
		return errors.Newf("unknown version manager %q", name)
	}

	if !a.Detect(ctx) {
		return errors.Wrapf(ErrNoManager, "%s is not installed", a.DisplayName())
	}

	d.mu.Lock()
	d.active = a
	if d.result != nil {
		d.result.ActiveName = name
	}
	d.mu.Unlock()
	return nil
}

// Exclusive runs fn while holding the named adapter's operation lock, so
// two overlapping mutating operations on the same tool cannot interleave.
func (d *Detector) Exclusive(name string, fn func() error) error {
	d.mu.Lock()
	lock, ok := d.opLocks[name]
	d.mu.Unlock()
	if !ok {
		return errors.Newf("unknown version manager %q", name)
	}

	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// managedPathFragments identify node binaries that live inside a known
// manager's directory tree.
var managedPathFragments = []string{
	".nvm",
	"nvm",
	"fnm",
	".volta",
	"volta",
	"mise",
	".local/share/mise",
	".local/share/pnpm",
	"pnpm",
}

// DetectOfficialNode checks whether a node binary exists outside any known
// manager's directory tree. Such an install shadows manager-based
// switching, so callers must warn and decline manager operations while it
// is present. Returns the offending path.
func DetectOfficialNode() (string, bool) {
	exe := "node"
	if goruntime.GOOS == constants.OSWindows {
		exe = "node" + constants.ExtExe
		// The official Windows installer has a fixed location.
		official := filepath.Join(`C:\Program Files`, "nodejs", exe)
		if _, err := os.Stat(official); err == nil {
			return official, true
		}
	}

	path, err := exec.LookPath(exe)
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	norm := filepath.ToSlash(path)
	for _, fragment := range managedPathFragments {
		if strings.Contains(norm, "/"+fragment+"/") {
			return "", false
		}
	}

	// /usr/local/bin/node and /usr/bin/node are the official pkg and
	// distro locations.
	return path, true
}
