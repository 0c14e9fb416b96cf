package manager

import (
	"context"
	"reflect"
	"testing"
)

// stubAdapter is a minimal scriptable Adapter for registry and detector tests.
type stubAdapter struct {
	name       string
	detectable bool
	detected   bool
	current    string
	installed  []string

	detectCalls int
	setCalls    []string
}

func (s *stubAdapter) Name() string           { return s.name }
func (s *stubAdapter) DisplayName() string    { return s.name }
func (s *stubAdapter) ConfigFileName() string { return ".nvmrc" }
func (s *stubAdapter) SupportsScope() bool    { return true }
func (s *stubAdapter) Available() bool        { return s.detected }

func (s *stubAdapter) Detect(context.Context) bool {
	s.detectCalls++
	s.detected = s.detectable
	return s.detected
}

func (s *stubAdapter) InstalledVersions(context.Context) []string {
	return append([]string{}, s.installed...)
}

func (s *stubAdapter) CurrentVersion(context.Context) string { return s.current }

func (s *stubAdapter) SetVersion(_ context.Context, version string, scope Scope) (*SetResult, error) {
	if version == "" {
		return nil, ErrEmptyVersion
	}
	s.setCalls = append(s.setCalls, version)
	s.current = version
	return &SetResult{ScopeUsed: scope}, nil
}

func (s *stubAdapter) InstallVersion(_ context.Context, version string) error {
	if version == "" {
		return ErrEmptyVersion
	}
	return nil
}

func (s *stubAdapter) AvailableVersions(context.Context) []Available { return nil }

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"fnm", "volta"} {
		name := name
		err := r.Register(Factory{Name: name, New: func(Deps) Adapter {
			return &stubAdapter{name: name}
		}})
		if err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	if err := r.Register(Factory{Name: "fnm"}); err == nil {
		t.Error("Register() with duplicate name should fail")
	}

	if !r.Has("volta") {
		t.Error("Has(\"volta\") = false, want true")
	}
	if r.Has("mise") {
		t.Error("Has(\"mise\") = true, want false")
	}

	adapters := r.Build([]string{"fnm", "mise", "volta"}, Deps{})
	got := make([]string, 0, len(adapters))
	for _, a := range adapters {
		got = append(got, a.Name())
	}
	// Unregistered names are skipped, order preserved.
	if !reflect.DeepEqual(got, []string{"fnm", "volta"}) {
		t.Errorf("Build() adapters = %v, want [fnm volta]", got)
	}
}

func TestPlatformOrder(t *testing.T) {
	unix := PlatformOrder("linux")
	if !reflect.DeepEqual(unix, []string{"nvm", "fnm", "volta", "mise", "pnpm"}) {
		t.Errorf("PlatformOrder(linux) = %v", unix)
	}

	win := PlatformOrder("windows")
	if win[0] != "nvm-windows" {
		t.Errorf("PlatformOrder(windows)[0] = %q, want nvm-windows", win[0])
	}
	for _, name := range win {
		if name == "nvm" {
			t.Error("PlatformOrder(windows) must not contain plain nvm")
		}
	}
}
