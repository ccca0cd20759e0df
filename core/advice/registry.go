package advice

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrInvalidComponent is returned when registering a component without a name or instance.
var ErrInvalidComponent = errors.New("invalid advice component")

// Component is an application component offered to discovery.
// Lower Priority values run first.
type Component struct {
	Name     string
	Priority int
	Instance any
}

// Source lists the components available for discovery.
type Source interface {
	Components() []Component
}

// Registry is an in-process Source that keeps components in registration order.
type Registry struct {
	mu         sync.RWMutex
	components []Component
}

// NewRegistry creates a registry holding components. It panics on invalid
// components, since they are programming errors.
func NewRegistry(components ...Component) *Registry {
	r := &Registry{}
	for _, c := range components {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register appends a component.
func (r *Registry) Register(c Component) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidComponent)
	}
	if c.Instance == nil {
		return fmt.Errorf("%w: %s has no instance", ErrInvalidComponent, c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.components = append(r.components, c)
	return nil
}

// Components returns a snapshot of the registered components.
func (r *Registry) Components() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.components)
}
