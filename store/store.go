// Package store provides the observable container and derived-view
// primitives shared by every domain service.
package store

import (
	"sync"
)

// Versioned is anything whose change history can be summarized as a counter.
// Views use it to decide whether a cached result is still current.
type Versioned interface {
	Version() uint64
}

// Store holds a single value and notifies listeners after every change.
// Mutations are atomic with respect to each other; listeners run
// synchronously after the value is committed, outside the lock.
type Store[T any] struct {
	mu        sync.RWMutex
	value     T
	version   uint64
	listeners []func(T)
}

func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies listeners.
func (s *Store[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	s.version++
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// Update applies fn to the current value and commits the result. fn runs
// under the store lock, so no other mutation interleaves with it.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.version++
	value := s.value
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// OnChange registers a listener invoked with the new value after every
// Set/Update. Listeners registered after construction never see the
// initial value, so loading persisted state does not echo a write back.
func (s *Store[T]) OnChange(fn func(T)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Version implements Versioned.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// View is a derived value: a pure function of one or more stores,
// recomputed lazily and cached until any input store changes.
type View[R any] struct {
	mu      sync.Mutex
	compute func() R
	sources []Versioned
	cached  R
	stamp   []uint64
	valid   bool
}

// NewView builds a view over the given source stores. compute must read
// only from those sources.
func NewView[R any](compute func() R, sources ...Versioned) *View[R] {
	return &View[R]{compute: compute, sources: sources}
}

// Get returns the derived value, recomputing only if a source changed.
func (v *View[R]) Get() R {
	v.mu.Lock()
	defer v.mu.Unlock()

	current := make([]uint64, len(v.sources))
	for i, s := range v.sources {
		current[i] = s.Version()
	}

	if v.valid && equalStamps(v.stamp, current) {
		return v.cached
	}

	v.cached = v.compute()
	v.stamp = current
	v.valid = true
	return v.cached
}

func equalStamps(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
