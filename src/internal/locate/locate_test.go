package locate

import (
	"os"
	"path/filepath"
	goruntime "runtime"
	"testing"
)

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, ExeName(name))
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecutable_OverrideWins(t *testing.T) {
	dir := t.TempDir()
	override := writeExecutable(t, dir, "fnm")

	got, ok := Executable(override, []string{"/does/not/exist"}, "fnm")
	if !ok {
		t.Fatal("Executable() ok = false, want true for existing override")
	}
	if got != override {
		t.Errorf("Executable() = %q, want override %q", got, override)
	}
}

func TestExecutable_MissingOverrideIsAMiss(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "fnm")

	// The well-known dir has the tool, but a configured override that
	// does not exist must not fall through to it.
	_, ok := Executable(filepath.Join(dir, "nope"), []string{dir}, "fnm")
	if ok {
		t.Error("Executable() ok = true, want false for missing override")
	}
}

func TestExecutable_WellKnownLocation(t *testing.T) {
	dir := t.TempDir()
	want := writeExecutable(t, dir, "volta")

	got, ok := Executable("", []string{"/does/not/exist", dir}, "volta")
	if !ok {
		t.Fatal("Executable() ok = false, want true")
	}
	if got != want {
		t.Errorf("Executable() = %q, want %q", got, want)
	}
}

func TestExecutable_PathLookup(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("PATH fixture uses unix permissions")
	}
	dir := t.TempDir()
	want := writeExecutable(t, dir, "mise")
	t.Setenv("PATH", dir)

	got, ok := Executable("", nil, "mise")
	if !ok {
		t.Fatal("Executable() ok = false, want true via PATH")
	}
	if got != want {
		t.Errorf("Executable() = %q, want %q", got, want)
	}
}

func TestExecutable_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, ok := Executable("", []string{"/does/not/exist"}, "nvman-no-such-tool"); ok {
		t.Error("Executable() ok = true, want false")
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	pin := filepath.Join(dir, ".nvmrc")
	if err := os.WriteFile(pin, []byte("20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok := File("", filepath.Join(dir, "missing"), pin)
	if !ok || got != pin {
		t.Errorf("File() = %q, %v, want %q, true", got, ok, pin)
	}

	if _, ok := File(dir); ok {
		t.Error("File() matched a directory")
	}
}
