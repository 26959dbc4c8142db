// Package store persists scenarios.
//
// A [Store] is a byte-oriented key/value store with optional expiry.
// Backends:
//   - [FileStore]: one JSON file per key under a directory, for the CLI
//   - [MemoryStore]: in-process map, for tests and single-instance servers
//   - [RedisStore]: Redis, for multi-instance servers
//   - [MongoStore]: a MongoDB collection with a TTL index
//   - [NullStore]: stores nothing
//
// [Open] builds the backend named in a [Config], wraps it in a [Scoped]
// namespace and reports hits, misses and writes to the observability hooks.
//
// Only scenario inputs are stored. Geometry is recomputed on demand because
// a layout pass is cheap and depends on the requested width.
//
// # Usage
//
//	st, err := store.Open(ctx, store.Config{Backend: store.BackendFile, Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	scenarios := store.NewScenarios(st, 0)
//	id, err := scenarios.Put(ctx, s)
package store
