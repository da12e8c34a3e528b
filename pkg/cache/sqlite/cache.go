package sqlite

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/warden-ai/warden/pkg/models"
)

// Kind names a cached snapshot family. Each kind carries its own TTL:
// governance snapshots go stale within seconds, lineage within minutes.
type Kind string

const (
	KindGovernance Kind = "governance"
	KindLineage    Kind = "lineage"
)

// Cache stores JSON-encoded backend snapshots per agent in SQLite.
// It replaces hook-local query-cache state with an explicit component:
// reads honor a per-kind TTL, and governed actions invalidate an
// agent's entries the moment they succeed.
type Cache struct {
	db     *sql.DB
	ttls   map[Kind]time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

const createSnapshotTable = `
CREATE TABLE IF NOT EXISTS snapshots (
	agent_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	payload BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	ttl_seconds INTEGER NOT NULL,
	PRIMARY KEY (agent_id, kind)
);
`

// New creates a Cache with the given database path and per-kind TTLs.
func New(dbPath string, ttls map[Kind]time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createSnapshotTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Cache{db: db, ttls: ttls}, nil
}

// Get retrieves a cached snapshot. Returns false if not found or expired.
func (c *Cache) Get(agentID string, kind Kind) ([]byte, bool) {
	var payload []byte
	var createdAt time.Time
	var ttlSeconds int64

	err := c.db.QueryRow(
		`SELECT payload, created_at, ttl_seconds FROM snapshots WHERE agent_id = ? AND kind = ?`,
		agentID, string(kind),
	).Scan(&payload, &createdAt, &ttlSeconds)

	if err != nil {
		c.misses.Add(1)
		return nil, false
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if time.Since(createdAt) > ttl {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return payload, true
}

// Put stores a snapshot, replacing any previous one for the same
// agent and kind.
func (c *Cache) Put(agentID string, kind Kind, payload []byte) error {
	ttl, ok := c.ttls[kind]
	if !ok {
		return fmt.Errorf("cache put: no TTL configured for kind %q", kind)
	}
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO snapshots (agent_id, kind, payload, created_at, ttl_seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		agentID, string(kind), payload, time.Now().UTC(), int64(ttl.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Invalidate removes every cached snapshot for an agent. Called after
// a governed action (an invocation) succeeds, so the next read refetches
// rather than serving a pre-action snapshot.
func (c *Cache) Invalidate(agentID string) error {
	_, err := c.db.Exec(`DELETE FROM snapshots WHERE agent_id = ?`, agentID)
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Stats returns cache performance metrics.
func (c *Cache) Stats() (models.CacheStats, error) {
	var count int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries: count,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Clear removes cache entries. If expiredOnly is true, only expired entries are removed.
func (c *Cache) Clear(expiredOnly bool) error {
	var query string
	if expiredOnly {
		query = `DELETE FROM snapshots WHERE (julianday('now') - julianday(created_at)) * 86400 > ttl_seconds`
	} else {
		query = `DELETE FROM snapshots`
	}
	_, err := c.db.Exec(query)
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
