// Package storage defines the durable key-value backing store abstraction.
package storage

// Provider is the interface for the string-keyed backing store. It is the
// only source of truth across restarts: values are JSON-textual payloads
// stored under fixed literal keys.
type Provider interface {
	// Read returns the raw payload stored under key.
	// A missing key yields apperr.ErrNotFound.
	Read(key string) ([]byte, error)
	// Write durably stores payload under key. Writes can fail
	// (quota, IO); failures are surfaced, never swallowed.
	Write(key string, payload []byte) error
	// Delete removes the payload under key. Deleting a missing key
	// is a no-op.
	Delete(key string) error
	// Keys returns every key currently present in the store.
	Keys() []string
}
