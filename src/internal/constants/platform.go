// Package constants defines common constants used across nvman
package constants

// Operating systems
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// Shell types
const (
	ShellBash = "bash"
)

// File extensions
const (
	ExtExe = ".exe"
)

// Pin artifact file names
const (
	NvmrcFile        = ".nvmrc"
	NodeVersionFile  = ".node-version"
	PackageJSONFile  = "package.json"
	ToolVersionsFile = ".tool-versions"
)
