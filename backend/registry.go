package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/ggcomp/compositor"
)

type registryEntry struct {
	name     string
	priority int
	factory  DriverFactory
}

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	drivers    = make(map[string]registryEntry)
)

// Register registers a driver factory with the given name and priority.
// This is typically called from init() functions in driver packages.
// If a driver with the same name is already registered, it will be replaced.
func Register(name string, priority int, factory DriverFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[name] = registryEntry{name: name, priority: priority, factory: factory}
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// sortedLocked returns the entries by descending priority, then name.
func sortedLocked() []registryEntry {
	entries := make([]registryEntry, 0, len(drivers))
	for _, e := range drivers {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

// Available returns the registered driver names, most preferred first.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	entries := sortedLocked()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// IsRegistered checks if a driver with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := drivers[name]
	return ok
}

// Get returns a driver instance by name.
// Returns nil if the driver is not registered or cannot run.
func Get(name string) compositor.Driver {
	registryMu.RLock()
	e, ok := drivers[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return e.factory()
}

// Default returns the highest priority driver that can run.
// Returns nil if no drivers are registered.
func Default() compositor.Driver {
	registryMu.RLock()
	entries := sortedLocked()
	registryMu.RUnlock()

	for _, e := range entries {
		if d := e.factory(); d != nil {
			return d
		}
	}
	return nil
}

// Open returns the named driver, or the default one when name is empty
// or "auto".
func Open(name string) (compositor.Driver, error) {
	if name == "" || name == "auto" {
		if d := Default(); d != nil {
			return d, nil
		}
		return nil, ErrDriverNotAvailable
	}
	if d := Get(name); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrDriverNotAvailable, name)
}
