package manager

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/nvman/nvman/src/internal/constants"
)

// Factory builds an adapter from its runtime dependencies. Adapter packages
// register factories from init(), mirroring how tool support is compiled in.
type Factory struct {
	Name string
	New  func(Deps) Adapter
}

// Registry holds the adapter factories for all compiled-in tools.
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

var globalRegistry = &Registry{
	factories: make(map[string]Factory),
}

// NewRegistry creates an empty registry. Tests use this to avoid touching
// the global one.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory to the registry.
func (r *Registry) Register(f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[f.Name]; exists {
		return errors.Newf("version manager %q is already registered", f.Name)
	}
	r.factories[f.Name] = f
	return nil
}

// Get retrieves a factory by tool name.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.factories[name]
	if !exists {
		return Factory{}, errors.Newf("version manager %q not found", name)
	}
	return f, nil
}

// Has checks whether a tool is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// List returns all registered tool names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Build constructs adapters for the given tool names, skipping names with
// no registered factory.
func (r *Registry) Build(names []string, deps Deps) []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapters := make([]Adapter, 0, len(names))
	for _, name := range names {
		if f, ok := r.factories[name]; ok {
			adapters = append(adapters, f.New(deps))
		}
	}
	return adapters
}

// PlatformOrder returns the fixed detection priority for a platform.
// Windows substitutes nvm-windows for nvm; everything else keeps the
// Unix list.
func PlatformOrder(goos string) []string {
	if goos == constants.OSWindows {
		return []string{"nvm-windows", "fnm", "volta", "mise", "pnpm"}
	}
	return []string{"nvm", "fnm", "volta", "mise", "pnpm"}
}

// Global registry access functions

// Register adds a factory to the global registry.
func Register(f Factory) error {
	return globalRegistry.Register(f)
}

// Get retrieves a factory from the global registry.
func Get(name string) (Factory, error) {
	return globalRegistry.Get(name)
}

// Has checks the global registry for a tool.
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// List returns all tool names in the global registry.
func List() []string {
	return globalRegistry.List()
}

// Build constructs adapters from the global registry.
func Build(names []string, deps Deps) []Adapter {
	return globalRegistry.Build(names, deps)
}
