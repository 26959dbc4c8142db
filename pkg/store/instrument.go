package store

import (
	"context"
	"time"

	"github.com/matzehuels/masonry/pkg/observability"
)

// instrumented reports store traffic to the observability hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so hits, misses and writes reach
// [observability.StoreHooks] tagged with backend.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := s.Store.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Store().OnStoreHit(ctx, s.backend)
		} else {
			observability.Store().OnStoreMiss(ctx, s.backend)
		}
	}
	return data, ok, err
}

func (s *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.Store.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Store().OnStorePut(ctx, s.backend, len(data))
	return nil
}
