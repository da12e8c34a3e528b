package models

import "time"

// SnapshotRecord is one governance snapshot persisted for trend views.
// Percentages are stored as observed; unlimited dimensions record -1.
type SnapshotRecord struct {
	ID            int64     `json:"id"`
	AgentID       string    `json:"agent_id"`
	BudgetPercent float64   `json:"budget_percent"`
	MinuteCurrent int64     `json:"minute_current"`
	HourCurrent   int64     `json:"hour_current"`
	DayCurrent    int64     `json:"day_current"`
	CreatedAt     time.Time `json:"created_at"`
}

// SnapshotSummary aggregates an agent's recorded snapshots.
type SnapshotSummary struct {
	AgentID       string    `json:"agent_id"`
	Samples       int       `json:"samples"`
	PeakBudgetPct float64   `json:"peak_budget_pct"`
	LastBudgetPct float64   `json:"last_budget_pct"`
	FirstSeen     time.Time `json:"first_seen"`
	LastSeen      time.Time `json:"last_seen"`
}
