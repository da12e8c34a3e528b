package governance

import (
	"fmt"

	"github.com/warden-ai/warden/pkg/models"
)

// Severity is the three-tier classification of a governance metric,
// plus Unset for dimensions with no configuration.
type Severity string

const (
	SeverityHealthy Severity = "healthy"
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
	SeverityUnset   Severity = "unset"
)

// Classification thresholds. These are fixed UI policy: the backend is
// the source of truth for enforcement, the console only decides how
// loudly to render server-computed usage. All lower bounds are
// inclusive, so a budget at exactly 90% is Warning, not Notice.
const (
	BudgetNoticePercent  = 80.0
	BudgetWarningPercent = 90.0
	RateNoticeRatio      = 0.80
	RateWarningRatio     = 0.95
)

// User-facing messages attached to classified metrics.
const (
	MsgBudgetUnset     = "No budget configuration set"
	MsgBudgetNotice    = "Budget usage is above 80%"
	MsgBudgetWarning   = "Budget usage is above 90%"
	MsgRateUnset       = "No rate limit configuration set"
	MsgRateApproaching = "Approaching rate limit"
	MsgRateExceeded    = "Rate limit exceeded - invocations may be throttled"
)

const infinity = "∞"

// BudgetView is the derived presentation state for budget usage.
type BudgetView struct {
	DisplayPercentage string
	Severity          Severity
	CapLabel          string
	Message           string
}

// RateLimitView is the derived presentation state for one rate window.
type RateLimitView struct {
	RatioLabel     string
	RemainingLabel string
	Severity       Severity
	Message        string
}

// ClassifyBudget derives presentation state from a budget snapshot.
// A nil usage means no budget is configured. An unlimited budget (no
// monthly cap) is never escalated past Healthy; its percentage is
// still formatted for informational display. The backend-supplied
// percentage is trusted for display but the severity tier is always
// re-derived here, never taken from the server.
func ClassifyBudget(usage *models.BudgetUsage) BudgetView {
	if usage == nil {
		return BudgetView{
			Severity: SeverityUnset,
			CapLabel: MsgBudgetUnset,
		}
	}

	view := BudgetView{
		DisplayPercentage: fmt.Sprintf("%.1f%%", usage.PercentageUsed),
	}

	if usage.MaxMonthlyCost == nil {
		view.Severity = SeverityHealthy
		view.CapLabel = "Unlimited"
		return view
	}

	view.CapLabel = fmt.Sprintf("$%.2f / $%.2f", usage.CurrentMonthCost, *usage.MaxMonthlyCost)
	switch {
	case usage.PercentageUsed >= BudgetWarningPercent:
		view.Severity = SeverityWarning
		view.Message = MsgBudgetWarning
	case usage.PercentageUsed >= BudgetNoticePercent:
		view.Severity = SeverityNotice
		view.Message = MsgBudgetNotice
	default:
		view.Severity = SeverityHealthy
	}
	return view
}

// ClassifyRateLimits derives presentation state for every rate window.
// Windows are classified independently: a nil map reports Unset for
// all windows, and a window missing from a non-nil map reports Unset
// without affecting the others. The result always contains all three
// windows.
func ClassifyRateLimits(limits map[models.RateWindow]models.RateLimitWindow) map[models.RateWindow]RateLimitView {
	views := make(map[models.RateWindow]RateLimitView, len(models.Windows))
	for _, window := range models.Windows {
		entry, ok := limits[window]
		if !ok {
			views[window] = RateLimitView{
				Severity: SeverityUnset,
				Message:  MsgRateUnset,
			}
			continue
		}
		views[window] = classifyWindow(entry)
	}
	return views
}

func classifyWindow(w models.RateLimitWindow) RateLimitView {
	if w.Limit == nil {
		return RateLimitView{
			RatioLabel:     fmt.Sprintf("%d / %s", w.Current, infinity),
			RemainingLabel: infinity + " remaining",
			Severity:       SeverityHealthy,
		}
	}

	limit := *w.Limit
	remaining := limit - w.Current
	if remaining < 0 {
		remaining = 0
	}
	view := RateLimitView{
		RatioLabel:     fmt.Sprintf("%d / %d", w.Current, limit),
		RemainingLabel: fmt.Sprintf("%d remaining", remaining),
	}

	// The exceeded message takes priority over the early warning: at
	// current >= limit the server is already throttling, which also
	// covers a configured limit of zero.
	switch {
	case w.Current >= limit:
		view.Severity = SeverityWarning
		view.Message = MsgRateExceeded
	case float64(w.Current)/float64(limit) >= RateWarningRatio:
		view.Severity = SeverityWarning
		view.Message = MsgRateApproaching
	case float64(w.Current)/float64(limit) >= RateNoticeRatio:
		view.Severity = SeverityNotice
	default:
		view.Severity = SeverityHealthy
	}
	return view
}
