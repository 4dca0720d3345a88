package device

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a device from resolved options.
type Factory func(o *Options) (Device, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a device constructor available under the given
// identifier. Backends call it from an init function. Registering the
// same identifier twice panics, as does a nil factory.
func Register(shortName string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if f == nil {
		panic("device: Register with nil factory")
	}
	if _, dup := registry[shortName]; dup {
		panic(fmt.Sprintf("device: Register called twice for %q", shortName))
	}
	registry[shortName] = f
}

// Names returns the identifiers of all registered devices, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the device registered under shortName.
func New(shortName string, opts ...Option) (Device, error) {
	registryMu.RLock()
	f, ok := registry[shortName]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (known devices: %v)", ErrUnknownDevice, shortName, Names())
	}

	o := newOptions(opts)
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("constructing %q: %w", shortName, err)
	}
	return f(o)
}
