package dto

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/dmitrymomot/requestdto/core/binder"
)

type inputEntry struct {
	id   TypeID
	new  func() any
	bind func(dst any, src binder.Source, sanitize bool) (binder.Diagnostics, error)
}

type outputEntry struct {
	id TypeID
	is func(v any) bool
}

// Registry holds the intermediate types, DTO types, builders and validators
// known to a resolver. Registration normally happens at startup; lookups are
// safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	inputs     map[TypeID]inputEntry
	outputs    map[TypeID]outputEntry
	builders   map[ComponentID]Builder
	validators map[ComponentID]Validator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		inputs:     make(map[TypeID]inputEntry),
		outputs:    make(map[TypeID]outputEntry),
		builders:   make(map[ComponentID]Builder),
		validators: make(map[ComponentID]Validator),
	}
}

// RegisterInput registers the intermediate type I under id with its binding
// table. A nil table means I has no header, path or query bindings.
func RegisterInput[I any](r *Registry, id TypeID, table *binder.Table[I]) error {
	if id == "" {
		return fmt.Errorf("%w: empty input type identifier", ErrInvalidRegistration)
	}
	sanitized := table.Sanitized()

	entry := inputEntry{
		id:  id,
		new: func() any { return new(I) },
		bind: func(dst any, src binder.Source, sanitize bool) (binder.Diagnostics, error) {
			in, ok := dst.(*I)
			if !ok {
				return nil, fmt.Errorf("%w: %s bound with %T", binder.ErrNotSettable, id, dst)
			}
			if sanitize {
				return sanitized.Bind(in, src)
			}
			return table.Bind(in, src)
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.inputs[id]; dup {
		return fmt.Errorf("%w: input %s", ErrDuplicateType, id)
	}
	r.inputs[id] = entry
	return nil
}

// RegisterType registers the concrete DTO type D under id. Values built for
// id must have exactly type D, so interface types are rejected.
func RegisterType[D any](r *Registry, id TypeID) error {
	if id == "" {
		return fmt.Errorf("%w: empty type identifier", ErrInvalidRegistration)
	}
	if t := reflect.TypeFor[D](); t.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %s is an interface type, register a concrete type", ErrInvalidRegistration, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.outputs[id]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateType, id)
	}
	r.outputs[id] = outputEntry{id: id, is: func(v any) bool {
		_, ok := v.(D)
		return ok
	}}
	return nil
}

// RegisterBuilder registers b under id.
func (r *Registry) RegisterBuilder(id ComponentID, b Builder) error {
	if id == "" || b == nil {
		return fmt.Errorf("%w: builder %q", ErrInvalidRegistration, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.builders[id]; dup {
		return fmt.Errorf("%w: builder %s", ErrDuplicateComponent, id)
	}
	r.builders[id] = b
	return nil
}

// RegisterValidator registers v under id.
func (r *Registry) RegisterValidator(id ComponentID, v Validator) error {
	if id == "" || v == nil {
		return fmt.Errorf("%w: validator %q", ErrInvalidRegistration, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.validators[id]; dup {
		return fmt.Errorf("%w: validator %s", ErrDuplicateComponent, id)
	}
	r.validators[id] = v
	return nil
}

// Builder returns the builder registered under id.
func (r *Registry) Builder(id ComponentID) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[id]
	if !ok {
		return nil, fmt.Errorf("%w: builder %s", ErrComponentNotFound, id)
	}
	return b, nil
}

// Validator returns the validator registered under id.
func (r *Registry) Validator(id ComponentID) (Validator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[id]
	if !ok {
		return nil, fmt.Errorf("%w: validator %s", ErrComponentNotFound, id)
	}
	return v, nil
}

func (r *Registry) input(id TypeID) (inputEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.inputs[id]
	if !ok {
		return inputEntry{}, fmt.Errorf("%w: input %s", ErrUnknownType, id)
	}
	return e, nil
}

func (r *Registry) output(id TypeID) (outputEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.outputs[id]
	if !ok {
		return outputEntry{}, fmt.Errorf("%w: %s", ErrUnknownType, id)
	}
	return e, nil
}
