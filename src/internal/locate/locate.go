// Package locate resolves version-manager executables. Probing order is
// fixed for every tool: an explicitly configured path wins, then a list of
// well-known install locations, then the executable search path.
package locate

import (
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"

	"github.com/nvman/nvman/src/internal/constants"
)

// ExeName appends the platform executable extension to a bare tool name.
func ExeName(name string) string {
	if goruntime.GOOS == constants.OSWindows {
		return name + constants.ExtExe
	}
	return name
}

// Executable resolves a tool executable. Returns the resolved path and
// whether anything was found. Never fails; a miss is reported as false.
func Executable(override string, wellKnown []string, name string) (string, bool) {
	if override != "" {
		if isExecutableFile(override) {
			return override, true
		}
		return "", false // an explicit override that does not exist is a miss, not a fallthrough
	}

	exe := ExeName(name)
	for _, dir := range wellKnown {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, exe)
		if isExecutableFile(candidate) {
			return candidate, true
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, true
	}
	return "", false
}

// File checks for a plain (non-executable) artifact such as nvm's profile
// script at any of the given paths.
func File(paths ...string) (string, bool) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Home returns the user home directory, or "" when it cannot be resolved.
// Adapters treat a missing home as "tool not found".
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if goruntime.GOOS == constants.OSWindows {
		return true
	}
	return info.Mode()&0111 != 0
}
