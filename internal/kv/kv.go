// Package kv provides the key-value backends the curation store persists to.
//
// Every backend stores opaque byte values under string keys and offers an
// atomic read-modify-write (Update) so counters and lists can be mutated
// without lost writes.
package kv

import "errors"

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("kv: key not found")

	// ErrUnavailable indicates the backend cannot be reached at all.
	// Callers treat it like an absent backend.
	ErrUnavailable = errors.New("kv: backend unavailable")
)

// UpdateFunc receives the current value (nil, false when absent) and returns
// the value to store. Returning a nil slice deletes the key; returning an
// error aborts the update and leaves the stored value untouched.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// Backend is a synchronous key-value store.
type Backend interface {
	// Get returns a copy of the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Update atomically applies fn to the value stored under key.
	Update(key string, fn UpdateFunc) error

	// Close releases the backend's resources.
	Close() error
}
