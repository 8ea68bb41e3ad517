package core

import (
	"fmt"
	"sort"
	"sync"
)

// Layout computes the path of an artifact relative to a repository root.
type Layout interface {
	// Path returns the slash-separated relative path for id, or "" if the
	// layout cannot place it.
	Path(id Identity) string
}

// LayoutFunc adapts a function to the Layout interface.
type LayoutFunc func(id Identity) string

// Path calls f(id).
func (f LayoutFunc) Path(id Identity) string { return f(id) }

// LayoutFactory builds a layout from a repository descriptor's properties.
type LayoutFactory func(properties map[string]string) (Layout, error)

var (
	factories = make(map[string]LayoutFactory)
	mu        sync.RWMutex
)

// RegisterLayout adds a layout factory under the repository type name
// (e.g., "maven", "flat", "jpp").
func RegisterLayout(name string, factory LayoutFactory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// NewLayout creates the layout registered under name.
func NewLayout(name string, properties map[string]string) (Layout, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown repository type: %s", name)
	}
	return factory(properties)
}

// SupportedLayouts returns all registered layout names, sorted.
func SupportedLayouts() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
