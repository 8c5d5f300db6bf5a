// Package store provides the key-value persistence capability injected
// into the prediction cache. The cache owns the blob format; stores only
// move opaque bytes.
package store

import "context"

// Store is the persistence capability. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for a key, or models.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes a value, replacing any existing value for the key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Iterate visits every stored key/value pair. Returning an error from
	// fn stops iteration and propagates the error.
	Iterate(ctx context.Context, fn func(key string, value []byte) error) error
	// Close releases underlying resources.
	Close() error
}
