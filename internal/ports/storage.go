package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the requested key has never been written.
var ErrKeyNotFound = errors.New("storage key not found")

// KeyValueStore is the durable local storage port. Values are raw JSON: the
// engine sanitizes whatever comes back from Get before trusting it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
