// Package container defines the associative container abstraction gencache
// builds generations from.
//
// Implementations MUST be safe for concurrent use without external locking
// and MUST be atomic per key: LoadOrStore retains exactly one value per key
// under concurrent insertion, and LoadAndDelete surfaces a removed value to
// exactly one caller. The cache relies on these two guarantees for its
// insert-if-absent and remove semantics; a container that loses either is
// not usable as a generation.
package container

// Map is one generation of entries.
type Map[K comparable, V any] interface {
	// Load returns (value, true) on hit; (zero, false) on miss.
	Load(key K) (V, bool)

	// Store sets key to value unconditionally.
	Store(key K, value V)

	// LoadOrStore returns the existing value for key if present.
	// Otherwise it stores and returns value. loaded is true when the
	// value was already present.
	LoadOrStore(key K, value V) (actual V, loaded bool)

	// LoadAndDelete removes key and returns the value it held.
	LoadAndDelete(key K) (value V, loaded bool)

	// Delete removes key. Absent keys are a no-op.
	Delete(key K)

	// Len returns the number of entries.
	Len() int

	// Clear removes all entries.
	Clear()
}

// Factory creates an empty container. The cache calls it once per
// generation: twice at construction and once per sweep.
type Factory[K comparable, V any] func() Map[K, V]
