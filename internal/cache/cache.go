// Package cache implements the opaque cache handle described in the
// core's no-shared-mutable-state design: a (kind, content-hash,
// args-hash, version)-keyed blob stash that operations may consult to
// skip re-building an expensive corpus, dendrogram, or taxonomy. Absence
// of a cache must never change behavior, only whether work is repeated.
// Grounded on the teacher's sqlite-backed memory store
// (internal/memory/store.go): schema-init-on-open, prepared Get/Save.
package cache

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	kind        TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	args_hash   TEXT NOT NULL,
	version     TEXT NOT NULL,
	payload     BLOB NOT NULL,
	PRIMARY KEY (kind, content_hash, args_hash, version)
);
`

// Key identifies one cached blob. It is the only addressing scheme the
// core uses — callers never see or set a raw database key.
type Key struct {
	Kind        string
	ContentHash string
	ArgsHash    string
	Version     string
}

// Cache is an opaque, sqlite-backed stash. A nil *Cache is valid and
// behaves as an always-miss cache, so operations can accept a cache
// argument that defaults to nil without branching on its presence.
type Cache struct {
	db     *sql.DB
	hits   int64
	misses int64
}

// Open opens (creating if necessary) a sqlite-backed cache at path. An
// empty path opens an in-memory cache, useful for tests and for
// single-process CLI invocations that don't want a durable file.
func Open(path string) (*Cache, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle. Safe to call on a nil
// Cache.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get retrieves a cached payload. A nil Cache always misses.
func (c *Cache) Get(key Key) ([]byte, bool) {
	if c == nil || c.db == nil {
		return nil, false
	}
	var payload []byte
	err := c.db.QueryRow(
		`SELECT payload FROM cache_entries WHERE kind = ? AND content_hash = ? AND args_hash = ? AND version = ?`,
		key.Kind, key.ContentHash, key.ArgsHash, key.Version,
	).Scan(&payload)
	if err != nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&c.hits, 1)
	return payload, true
}

// Put stores payload under key, overwriting any existing entry. A no-op
// on a nil Cache.
func (c *Cache) Put(key Key, payload []byte) error {
	if c == nil || c.db == nil {
		return nil
	}
	_, err := c.db.Exec(
		`INSERT INTO cache_entries (kind, content_hash, args_hash, version, payload) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (kind, content_hash, args_hash, version) DO UPDATE SET payload = excluded.payload`,
		key.Kind, key.ContentHash, key.ArgsHash, key.Version, payload,
	)
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// Stats reports cumulative hit/miss counts since Open. The analyze
// operation does not report them.
func (c *Cache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	return int(atomic.LoadInt64(&c.hits)), int(atomic.LoadInt64(&c.misses))
}
