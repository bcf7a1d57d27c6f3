// Package kv provides a generic thread-safe key-value container that
// application state can live in while an inspector reads it.
package kv

import (
	"maps"
	"sync"
)

// Store is a thread-safe generic key-value store.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates a new key-value store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Update replaces the value stored under key with fn(current). The read and
// write happen under one lock so concurrent updates never interleave.
func (s *Store[K, V]) Update(key K, fn func(V) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.data[key])
	s.data[key] = next
	return next
}

// SetBatch stores multiple key-value pairs at once.
func (s *Store[K, V]) SetBatch(items map[K]V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range items {
		s.data[k] = v
	}
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Copy returns a shallow copy of the current contents. Later writes to the
// store are not visible through the returned map.
func (s *Store[K, V]) Copy() map[K]V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}

// Snapshot returns Copy as an untyped value so the store can be handed to
// inspectors that dump arbitrary values.
func (s *Store[K, V]) Snapshot() any {
	return s.Copy()
}
