package printer

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps administrator-visible driver names to printer devices. The
// relay agent builds one from its config; the POS server builds one for
// targets it spools locally. Unknown drivers fall back to the default entry.
type Registry struct {
	mu       sync.RWMutex
	printers map[string]Printer
	fallback string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{printers: make(map[string]Printer)}
}

// Register adds or replaces a driver.
func (r *Registry) Register(driver string, p Printer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printers[driver] = p
	if r.fallback == "" {
		r.fallback = driver
	}
}

// SetDefault marks the driver used when a job names no driver, or names one
// that is not registered.
func (r *Registry) SetDefault(driver string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = driver
}

// Default returns the fallback driver name, or "" when nothing is registered.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Resolve returns the printer for the given driver, applying the fallback.
func (r *Registry) Resolve(driver string) (Printer, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if driver != "" {
		if p, ok := r.printers[driver]; ok {
			return p, driver, nil
		}
	}
	if p, ok := r.printers[r.fallback]; ok {
		return p, r.fallback, nil
	}
	return nil, "", fmt.Errorf("printer: no printer available for driver %q", driver)
}

// Drivers lists the registered driver names, sorted.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.printers))
	for name := range r.printers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
