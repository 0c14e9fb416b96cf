//go:build !windows

package pnpm

// Unix file semantics allow replacing a running binary, so there is
// nothing to release before a switch.
func runningNodeProcesses() ([]uint32, error) { return nil, nil }

func terminateProcess(uint32) error { return nil }
