package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arthur-debert/importsteps/pkg/errors"
)

// Registry maps unique keys to values. Keys remember the order they were
// registered in.
type Registry[K ~string, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// New creates an empty registry
func New[K ~string, V any]() *Registry[K, V] {
	return &Registry[K, V]{items: make(map[K]V)}
}

// Register adds value under key. Empty and duplicate keys are rejected; a
// duplicate never replaces the first value.
func (r *Registry[K, V]) Register(key K, value V) error {
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "registry key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%q is already registered", string(key))
	}
	r.items[key] = value
	r.order = append(r.order, key)
	return nil
}

// MustRegister is Register for init functions: a failure panics
func (r *Registry[K, V]) MustRegister(key K, value V) {
	if err := r.Register(key, value); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// Lookup returns the value for key
func (r *Registry[K, V]) Lookup(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[key]
	return v, ok
}

// Get is Lookup reporting a missing key as NOT_FOUND
func (r *Registry[K, V]) Get(key K) (V, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return v, errors.Newf(errors.ErrNotFound, "%q is not registered", string(key)).
			WithDetail("key", string(key))
	}
	return v, nil
}

// Has reports whether key is registered
func (r *Registry[K, V]) Has(key K) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Len is the number of registered keys
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Keys returns the keys in registration order
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Sorted returns the keys in lexical order
func (r *Registry[K, V]) Sorted() []K {
	keys := r.Keys()
	slices.Sort(keys)
	return keys
}
