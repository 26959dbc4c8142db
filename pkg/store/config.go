package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/matzehuels/masonry/pkg/errors"
)

// Backend names.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNull   = "null"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNull}

// Default configuration values.
const (
	DefaultBackend    = BackendFile
	DefaultNamespace  = "masonry:"
	DefaultRedisAddr  = "localhost:6379"
	DefaultMongoURI   = "mongodb://localhost:27017"
	DefaultDatabase   = "masonry"
	DefaultCollection = "scenarios"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string        `toml:"backend"`
	Namespace string        `toml:"namespace"`
	TTL       time.Duration `toml:"ttl"`

	// File backend.
	Dir string `toml:"dir"`

	// Redis backend.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// Mongo backend.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// SetDefaults fills empty fields. An empty Dir becomes
// ~/.cache/masonry/scenarios.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Dir == "" {
		c.Dir = DefaultDir()
	}
	if c.RedisAddr == "" {
		c.RedisAddr = DefaultRedisAddr
	}
	if c.MongoURI == "" {
		c.MongoURI = DefaultMongoURI
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = DefaultDatabase
	}
	if c.MongoCollection == "" {
		c.MongoCollection = DefaultCollection
	}
}

// Validate rejects unknown backends and negative TTLs.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (want one of %v)", c.Backend, Backends)
	}
	if c.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "store ttl must not be negative")
	}
	if c.Backend == BackendMongo {
		if err := errors.ValidateURL(c.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mongo_uri")
		}
	}
	return nil
}

// DefaultDir returns the default file store directory.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "masonry", "scenarios")
}

// Open builds the configured backend, scoped to the namespace and
// instrumented with store hooks. Defaults are applied to a copy of cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendFile:
		s, err = NewFileStore(cfg.Dir)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeStoreUnavailable, err, "open %s", cfg.Dir)
		}
	case BackendMemory:
		s = NewMemoryStore()
	case BackendRedis:
		s, err = NewRedisStore(ctx, RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	case BackendMongo:
		s, err = NewMongoStore(ctx, MongoOptions{URI: cfg.MongoURI, Database: cfg.MongoDatabase, Collection: cfg.MongoCollection})
	case BackendNull:
		s = NewNullStore()
	default:
		err = fmt.Errorf("unreachable backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(NewScoped(s, cfg.Namespace), cfg.Backend), nil
}
