package store

import (
	"context"
	"time"
)

// NullStore is a no-op store that never keeps anything.
// Useful for testing or when persistence should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return NullStore{}
}

// Get always returns a miss.
func (NullStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (NullStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// List always returns no keys.
func (NullStore) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (NullStore) Close() error {
	return nil
}

var _ Store = NullStore{}
