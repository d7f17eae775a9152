// Package storage provides the durable key/value layer behind the cart,
// checkout and tracking stores. Values are opaque JSON blobs keyed by
// well-known names ("cart:<session>", "trackingDismissedMap", ...).
package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence boundary for session-shaped state.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}
