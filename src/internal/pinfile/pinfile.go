// Package pinfile discovers, reads, and writes project Node.js version
// pins: .nvmrc, .node-version, the volta.node field of package.json, and
// .tool-versions.
package pinfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/nvman/nvman/src/internal/constants"
	"github.com/nvman/nvman/src/internal/manager"
)

// Source says what kind of artifact a pin came from.
type Source string

const (
	// SourcePinFile is a bare version file (.nvmrc, .node-version,
	// .tool-versions).
	SourcePinFile Source = "pin-file"
	// SourceManifest is the volta.node field of package.json.
	SourceManifest Source = "manifest"
)

// Pin is a discovered project version pin.
type Pin struct {
	Path    string
	Version string
	Source  Source
}

// ErrNoPin is returned when no pin artifact exists between the start
// directory and the filesystem root.
var ErrNoPin = errors.New("no version pin found")

// Discover walks from startDir up to the filesystem root and returns the
// first pin found. Within a directory, precedence is .nvmrc, then
// .node-version, then package.json volta.node, then .tool-versions. The
// nearest ancestor always wins over precedence in a higher directory.
func Discover(startDir string) (*Pin, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, errors.Wrap(err, "resolving start directory")
	}

	for {
		if pin := discoverIn(dir); pin != nil {
			return pin, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoPin
		}
		dir = parent
	}
}

func discoverIn(dir string) *Pin {
	for _, name := range []string{constants.NvmrcFile, constants.NodeVersionFile} {
		path := filepath.Join(dir, name)
		if v, err := readPinFile(path); err == nil && v != "" {
			return &Pin{Path: path, Version: v, Source: SourcePinFile}
		}
	}

	manifest := filepath.Join(dir, constants.PackageJSONFile)
	if v, err := ReadManifestPin(manifest); err == nil && v != "" {
		return &Pin{Path: manifest, Version: v, Source: SourceManifest}
	}

	toolVersions := filepath.Join(dir, constants.ToolVersionsFile)
	if v, err := readToolVersions(toolVersions); err == nil && v != "" {
		return &Pin{Path: toolVersions, Version: v, Source: SourcePinFile}
	}

	return nil
}

// readPinFile returns the trimmed first non-empty line of a bare version
// file, normalized.
func readPinFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return manager.Normalize(line), nil
	}
	return "", scanner.Err()
}

// readToolVersions extracts the node entry from an asdf/mise
// .tool-versions file ("nodejs 20.10.0" or "node 20.10.0" rows).
func readToolVersions(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if fields[0] == "node" || fields[0] == "nodejs" {
			return manager.Normalize(fields[1]), nil
		}
	}
	return "", scanner.Err()
}

// ReadManifestPin returns the volta.node field of a package.json, or ""
// when absent.
func ReadManifestPin(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	node := gjson.GetBytes(data, "volta.node")
	if !node.Exists() {
		return "", nil
	}
	return manager.Normalize(node.String()), nil
}

// WritePinFile writes a bare version file with a trailing newline.
func WritePinFile(path, version string) error {
	if version == "" {
		return manager.ErrEmptyVersion
	}
	return os.WriteFile(path, []byte(manager.Normalize(version)+"\n"), 0o644)
}

// WriteManifestPin sets volta.node in a package.json, preserving the rest
// of the document.
func WriteManifestPin(path, version string) error {
	if version == "" {
		return manager.ErrEmptyVersion
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading manifest")
	}
	updated, err := sjson.SetBytes(data, "volta.node", manager.Normalize(version))
	if err != nil {
		return errors.Wrap(err, "updating volta.node")
	}
	return os.WriteFile(path, updated, 0o644)
}

// Satisfied reports whether the active version already matches the pin.
// Partial pins match on release boundaries, so a "20" pin accepts any
// 20.x.y.
func Satisfied(pin *Pin, current string) bool {
	if pin == nil || pin.Version == "" || current == "" {
		return false
	}
	return manager.IsVersionMatching(pin.Version, current)
}
