package csync

import (
	"iter"
	"sync/atomic"
)

// NewVersionedMap creates a new versioned, thread-safe map.
func NewVersionedMap[K comparable, V any]() *VersionedMap[K, V] {
	return &VersionedMap[K, V]{
		m: NewMap[K, V](),
	}
}

// VersionedMap is a thread-safe map whose version grows on every write. A
// reader that remembers the version it last saw can tell whether anything
// changed without diffing the contents.
type VersionedMap[K comparable, V any] struct {
	m *Map[K, V]
	v atomic.Uint64
}

func (m *VersionedMap[K, V]) Get(key K) (V, bool) {
	return m.m.Get(key)
}

// Set stores value under key and bumps the version.
func (m *VersionedMap[K, V]) Set(key K, value V) {
	m.m.Set(key, value)
	m.v.Add(1)
}

// Update applies fn to the value under key. The version only changes when
// the key exists.
func (m *VersionedMap[K, V]) Update(key K, fn func(V) V) bool {
	if !m.m.Update(key, fn) {
		return false
	}
	m.v.Add(1)
	return true
}

// Del deletes key and bumps the version, whether or not key was present.
func (m *VersionedMap[K, V]) Del(key K) {
	m.m.Del(key)
	m.v.Add(1)
}

// Reset replaces every entry at once and bumps the version.
func (m *VersionedMap[K, V]) Reset(inner map[K]V) {
	m.m.Reset(inner)
	m.v.Add(1)
}

func (m *VersionedMap[K, V]) Seq2() iter.Seq2[K, V] {
	return m.m.Seq2()
}

func (m *VersionedMap[K, V]) Len() int {
	return m.m.Len()
}

// Version returns the current version of the map.
func (m *VersionedMap[K, V]) Version() uint64 {
	return m.v.Load()
}

// Changed reports whether the map was written since version seen, and the
// version to remember next.
func (m *VersionedMap[K, V]) Changed(seen uint64) (bool, uint64) {
	v := m.v.Load()
	return v != seen, v
}
