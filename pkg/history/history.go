package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/warden-ai/warden/pkg/models"
)

// Store records and queries governance snapshots over time, backing
// the console's trend views. Snapshots are append-only: each poll
// writes a new row, nothing is mutated.
type Store interface {
	// Record appends a snapshot row.
	Record(ctx context.Context, rec models.SnapshotRecord) error
	// QueryByAgent returns snapshot rows for an agent since a given time.
	QueryByAgent(ctx context.Context, agentID string, since time.Time) ([]models.SnapshotRecord, error)
	// Summary aggregates recorded snapshots, optionally filtered by agent.
	Summary(ctx context.Context, agentID string) ([]models.SnapshotSummary, error)
	// Close releases resources.
	Close() error
}

// SQLiteStore implements Store with a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS governance_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	agent_id TEXT NOT NULL,
	budget_percent REAL NOT NULL,
	minute_current INTEGER NOT NULL,
	hour_current INTEGER NOT NULL,
	day_current INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_snapshots_agent_time ON governance_snapshots(agent_id, created_at);
`

// New creates a SQLiteStore and runs auto-migration.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// FromStatus converts a governance snapshot into a history row.
// Unconfigured or unlimited dimensions record -1 so trend views can
// tell "no data" apart from a real zero.
func FromStatus(agentID string, status *models.GovernanceStatus, at time.Time) models.SnapshotRecord {
	rec := models.SnapshotRecord{
		AgentID:       agentID,
		BudgetPercent: -1,
		MinuteCurrent: -1,
		HourCurrent:   -1,
		DayCurrent:    -1,
		CreatedAt:     at,
	}
	if status == nil {
		return rec
	}
	if status.BudgetUsage != nil {
		rec.BudgetPercent = status.BudgetUsage.PercentageUsed
	}
	if w, ok := status.RateLimits[models.PerMinute]; ok {
		rec.MinuteCurrent = w.Current
	}
	if w, ok := status.RateLimits[models.PerHour]; ok {
		rec.HourCurrent = w.Current
	}
	if w, ok := status.RateLimits[models.PerDay]; ok {
		rec.DayCurrent = w.Current
	}
	return rec
}

// Record appends a snapshot row.
func (s *SQLiteStore) Record(ctx context.Context, rec models.SnapshotRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO governance_snapshots (agent_id, budget_percent, minute_current, hour_current, day_current, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.AgentID, rec.BudgetPercent, rec.MinuteCurrent, rec.HourCurrent, rec.DayCurrent, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	return nil
}

// QueryByAgent returns snapshot rows for an agent since a given time.
func (s *SQLiteStore) QueryByAgent(ctx context.Context, agentID string, since time.Time) ([]models.SnapshotRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, agent_id, budget_percent, minute_current, hour_current, day_current, created_at
		 FROM governance_snapshots WHERE agent_id = ? AND created_at >= ? ORDER BY created_at DESC`,
		agentID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var records []models.SnapshotRecord
	for rows.Next() {
		var r models.SnapshotRecord
		if err := rows.Scan(&r.ID, &r.AgentID, &r.BudgetPercent, &r.MinuteCurrent, &r.HourCurrent, &r.DayCurrent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Summary aggregates recorded snapshots grouped by agent. Aggregation
// happens in Go: rows are read in insertion order per agent, so the
// last row seen for an agent is its latest snapshot.
func (s *SQLiteStore) Summary(ctx context.Context, agentID string) ([]models.SnapshotSummary, error) {
	query := `SELECT agent_id, budget_percent, created_at FROM governance_snapshots`
	var args []any
	if agentID != "" {
		query += ` WHERE agent_id = ?`
		args = append(args, agentID)
	}
	query += ` ORDER BY agent_id, created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	byAgent := make(map[string]*models.SnapshotSummary)
	var order []string
	for rows.Next() {
		var id string
		var pct float64
		var at time.Time
		if err := rows.Scan(&id, &pct, &at); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum, ok := byAgent[id]
		if !ok {
			sum = &models.SnapshotSummary{AgentID: id, PeakBudgetPct: pct, FirstSeen: at}
			byAgent[id] = sum
			order = append(order, id)
		}
		sum.Samples++
		if pct > sum.PeakBudgetPct {
			sum.PeakBudgetPct = pct
		}
		sum.LastBudgetPct = pct
		sum.LastSeen = at
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summaries := make([]models.SnapshotSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byAgent[id])
	}
	return summaries, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
