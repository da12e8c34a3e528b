package models

// RateWindow identifies a rate-limit accounting window.
type RateWindow string

const (
	PerMinute RateWindow = "per_minute"
	PerHour   RateWindow = "per_hour"
	PerDay    RateWindow = "per_day"
)

// Windows lists all rate-limit windows in display order.
var Windows = []RateWindow{PerMinute, PerHour, PerDay}

// BudgetUsage is the backend-computed monthly budget snapshot for an agent.
// A nil MaxMonthlyCost means the budget is unlimited.
type BudgetUsage struct {
	CurrentMonthCost float64  `json:"current_month_cost"`
	MaxMonthlyCost   *float64 `json:"max_monthly_cost,omitempty"`
	PercentageUsed   float64  `json:"percentage_used"`
}

// RateLimitWindow is the backend-computed usage for one window.
// A nil Limit means the window is unlimited. Current may transiently
// exceed Limit: the server has already throttled but the snapshot
// reflects the last-known count.
type RateLimitWindow struct {
	Current   int64  `json:"current"`
	Limit     *int64 `json:"limit,omitempty"`
	Remaining *int64 `json:"remaining,omitempty"`
}

// GovernanceStatus is a point-in-time governance snapshot. A nil field
// means that dimension has no configuration set, which is distinct
// from a configured-but-unlimited dimension.
type GovernanceStatus struct {
	BudgetUsage *BudgetUsage                   `json:"budget_usage,omitempty"`
	RateLimits  map[RateWindow]RateLimitWindow `json:"rate_limits,omitempty"`
}
