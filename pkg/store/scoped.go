package store

import (
	"context"
	"strings"
	"time"
)

// Scoped prefixes every key of an inner store, so several deployments or
// users can share one backend without seeing each other's keys.
//
//	prod := NewScoped(redisStore, "masonry:prod:")
//	test := NewScoped(redisStore, "masonry:test:")
type Scoped struct {
	inner  Store
	prefix string
}

// NewScoped wraps inner with prefix. An empty prefix returns inner itself.
func NewScoped(inner Store, prefix string) Store {
	if prefix == "" {
		return inner
	}
	return &Scoped{inner: inner, prefix: prefix}
}

func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// List returns matching keys with the scope prefix removed.
func (s *Scoped) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.List(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, s.prefix)
	}
	return keys, nil
}

func (s *Scoped) Close() error { return s.inner.Close() }
