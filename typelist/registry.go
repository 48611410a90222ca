package typelist

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Registry resolves configuration names to type descriptors.
//
// It is intentionally:
// - read-only
// - side effect free
// - build-time only
//
// Expected usage:
//
//	t, ok, err := reg.Resolve("shape.circle")
type Registry interface {
	Resolve(name string) (t reflect.Type, ok bool, err error)
}

// ErrRegistryPanic is returned if a registry implementation panics internally.
var ErrRegistryPanic = errors.New("registry: panic during Resolve")

// UnknownTypeNameError is returned by FromNames when a name does not resolve.
type UnknownTypeNameError struct{ Name string }

// Error implements the error interface.
func (e UnknownTypeNameError) Error() string {
	// Example: typelist: unknown type name "shape.hexagon"
	return "typelist: unknown type name " + strconv.Quote(e.Name)
}

// Is reports whether target is ErrInvalidList.
func (e UnknownTypeNameError) Is(target error) bool { return target == ErrInvalidList }

// MapRegistry is a simple in-memory registry. The zero value is empty and
// ready to use.
type MapRegistry struct {
	items map[string]reflect.Type
}

// NewMapRegistry returns an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{items: map[string]reflect.Type{}}
}

// Provide stores t under name and returns the registry for chaining.
func (r *MapRegistry) Provide(name string, t reflect.Type) *MapRegistry {
	if r.items == nil {
		r.items = map[string]reflect.Type{}
	}
	r.items[name] = t
	return r
}

// Register stores T under name and returns the registry for chaining.
func Register[T any](r *MapRegistry, name string) *MapRegistry {
	return r.Provide(name, Type[T]())
}

// Resolve implements Registry. A panic, such as from a nil *MapRegistry, is
// returned as an error wrapping ErrRegistryPanic.
func (r *MapRegistry) Resolve(name string) (t reflect.Type, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			t = nil
			ok = false
			err = fmt.Errorf("%w: %v", ErrRegistryPanic, rec)
		}
	}()

	t, ok = r.items[name]
	return t, ok, nil
}

// Get returns the type if present (no panic).
func (r *MapRegistry) Get(name string) (reflect.Type, bool) {
	t, ok := r.items[name]
	return t, ok
}

// MustGet returns the type or panics with a helpful message.
func (r *MapRegistry) MustGet(name string) reflect.Type {
	t, ok := r.items[name]
	if !ok {
		panic(fmt.Errorf("typelist: registry missing name %q", name))
	}
	return t
}

// Names returns the registered names in sorted order.
func (r *MapRegistry) Names() []string {
	out := make([]string, 0, len(r.items))
	for name := range r.items {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FromNames resolves names through reg and builds a TypeList in the given order.
//
// A missing name yields UnknownTypeNameError; resolver failures are returned
// as-is; the resolved types are then validated by New.
func FromNames(reg Registry, names ...string) (TypeList, error) {
	if reg == nil && len(names) > 0 {
		return TypeList{}, UnknownTypeNameError{Name: names[0]}
	}
	types := make([]reflect.Type, 0, len(names))
	for _, name := range names {
		t, ok, err := reg.Resolve(name)
		if err != nil {
			return TypeList{}, err
		}
		if !ok {
			return TypeList{}, UnknownTypeNameError{Name: name}
		}
		types = append(types, t)
	}
	return New(types...)
}
