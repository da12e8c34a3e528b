package governance

import (
	"strings"
	"testing"

	"github.com/warden-ai/warden/pkg/models"
)

func capped(cost, max, pct float64) *models.BudgetUsage {
	return &models.BudgetUsage{
		CurrentMonthCost: cost,
		MaxMonthlyCost:   &max,
		PercentageUsed:   pct,
	}
}

func window(current, limit int64) models.RateLimitWindow {
	return models.RateLimitWindow{Current: current, Limit: &limit}
}

func TestClassifyBudgetTiers(t *testing.T) {
	cases := []struct {
		pct  float64
		want Severity
	}{
		{0, SeverityHealthy},
		{50, SeverityHealthy},
		{79.9, SeverityHealthy},
		{80, SeverityNotice},
		{85, SeverityNotice},
		{89.9, SeverityNotice},
		{90, SeverityWarning},
		{95, SeverityWarning},
		{120, SeverityWarning},
	}
	for _, tc := range cases {
		got := ClassifyBudget(capped(tc.pct, 100, tc.pct))
		if got.Severity != tc.want {
			t.Errorf("pct %.1f: expected %s, got %s", tc.pct, tc.want, got.Severity)
		}
	}
}

func TestClassifyBudgetUnset(t *testing.T) {
	got := ClassifyBudget(nil)
	if got.Severity != SeverityUnset {
		t.Errorf("expected unset, got %s", got.Severity)
	}
	if got.CapLabel != "No budget configuration set" {
		t.Errorf("unexpected cap label: %s", got.CapLabel)
	}
}

func TestClassifyBudgetUnlimited(t *testing.T) {
	// No cap means never flagged, even at absurd percentages.
	for _, pct := range []float64{0, 85, 95, 250} {
		got := ClassifyBudget(&models.BudgetUsage{CurrentMonthCost: 10, PercentageUsed: pct})
		if got.Severity != SeverityHealthy {
			t.Errorf("pct %.0f: expected healthy for unlimited budget, got %s", pct, got.Severity)
		}
		if got.CapLabel != "Unlimited" {
			t.Errorf("unexpected cap label: %s", got.CapLabel)
		}
	}

	// Percentage stays visible as informational display.
	got := ClassifyBudget(&models.BudgetUsage{CurrentMonthCost: 10, PercentageUsed: 95})
	if got.DisplayPercentage != "95.0%" {
		t.Errorf("unexpected display percentage: %s", got.DisplayPercentage)
	}
}

func TestClassifyBudgetWarningScenario(t *testing.T) {
	got := ClassifyBudget(capped(95, 100, 95))
	if got.DisplayPercentage != "95.0%" {
		t.Errorf("expected 95.0%%, got %s", got.DisplayPercentage)
	}
	if got.Severity != SeverityWarning {
		t.Errorf("expected warning, got %s", got.Severity)
	}
	if got.Message != "Budget usage is above 90%" {
		t.Errorf("unexpected message: %s", got.Message)
	}
	if got.CapLabel != "$95.00 / $100.00" {
		t.Errorf("unexpected cap label: %s", got.CapLabel)
	}
}

func TestClassifyRateLimitsUnset(t *testing.T) {
	views := ClassifyRateLimits(nil)
	if len(views) != 3 {
		t.Fatalf("expected all 3 windows, got %d", len(views))
	}
	for _, w := range models.Windows {
		v := views[w]
		if v.Severity != SeverityUnset {
			t.Errorf("%s: expected unset, got %s", w, v.Severity)
		}
		if v.Message != "No rate limit configuration set" {
			t.Errorf("%s: unexpected message: %s", w, v.Message)
		}
	}
}

func TestClassifyRateLimitsUnlimitedWindow(t *testing.T) {
	views := ClassifyRateLimits(map[models.RateWindow]models.RateLimitWindow{
		models.PerMinute: {Current: 42},
	})

	v := views[models.PerMinute]
	if v.Severity != SeverityHealthy {
		t.Errorf("expected healthy, got %s", v.Severity)
	}
	if v.RatioLabel != "42 / ∞" {
		t.Errorf("unexpected ratio label: %s", v.RatioLabel)
	}
	if !strings.Contains(v.RemainingLabel, "∞") {
		t.Errorf("expected infinity in remaining label, got %s", v.RemainingLabel)
	}
}

func TestClassifyRateLimitsTiers(t *testing.T) {
	cases := []struct {
		current, limit int64
		want           Severity
	}{
		{0, 100, SeverityHealthy},
		{79, 100, SeverityHealthy},
		{80, 100, SeverityNotice},
		{94, 100, SeverityNotice},
		{95, 100, SeverityWarning},
		{99, 100, SeverityWarning},
		{100, 100, SeverityWarning},
		{130, 100, SeverityWarning},
	}
	for _, tc := range cases {
		views := ClassifyRateLimits(map[models.RateWindow]models.RateLimitWindow{
			models.PerHour: window(tc.current, tc.limit),
		})
		if got := views[models.PerHour].Severity; got != tc.want {
			t.Errorf("%d/%d: expected %s, got %s", tc.current, tc.limit, tc.want, got)
		}
	}
}

func TestClassifyRateLimitsMessages(t *testing.T) {
	// 95% fires the early warning, current >= limit the exceeded
	// message; exceeded takes priority when both apply.
	views := ClassifyRateLimits(map[models.RateWindow]models.RateLimitWindow{
		models.PerMinute: window(96, 100),
		models.PerHour:   window(100, 100),
		models.PerDay:    window(130, 100),
	})

	if msg := views[models.PerMinute].Message; msg != "Approaching rate limit" {
		t.Errorf("per_minute: unexpected message: %s", msg)
	}
	for _, w := range []models.RateWindow{models.PerHour, models.PerDay} {
		if msg := views[w].Message; msg != "Rate limit exceeded - invocations may be throttled" {
			t.Errorf("%s: unexpected message: %s", w, msg)
		}
	}
}

func TestClassifyRateLimitsRemainingFloorsAtZero(t *testing.T) {
	views := ClassifyRateLimits(map[models.RateWindow]models.RateLimitWindow{
		models.PerDay: window(130, 100),
	})
	if got := views[models.PerDay].RemainingLabel; got != "0 remaining" {
		t.Errorf("expected 0 remaining, got %s", got)
	}
}

func TestClassifyRateLimitsWindowsIndependent(t *testing.T) {
	views := ClassifyRateLimits(map[models.RateWindow]models.RateLimitWindow{
		models.PerMinute: window(96, 100),
		models.PerHour:   window(50, 100),
	})

	if got := views[models.PerMinute].Severity; got != SeverityWarning {
		t.Errorf("per_minute: expected warning, got %s", got)
	}
	if got := views[models.PerHour].Severity; got != SeverityHealthy {
		t.Errorf("per_hour: expected healthy, got %s", got)
	}
	if got := views[models.PerDay].Severity; got != SeverityUnset {
		t.Errorf("per_day: expected unset, got %s", got)
	}
}

func TestClassifyRateLimitsHealthyScenario(t *testing.T) {
	views := ClassifyRateLimits(map[models.RateWindow]models.RateLimitWindow{
		models.PerMinute: window(5, 10),
	})

	v := views[models.PerMinute]
	if v.RatioLabel != "5 / 10" {
		t.Errorf("unexpected ratio label: %s", v.RatioLabel)
	}
	if v.RemainingLabel != "5 remaining" {
		t.Errorf("unexpected remaining label: %s", v.RemainingLabel)
	}
	if v.Severity != SeverityHealthy {
		t.Errorf("expected healthy, got %s", v.Severity)
	}
	if v.Message != "" {
		t.Errorf("expected no message, got %s", v.Message)
	}
}

func TestClassifyRateLimitsZeroLimit(t *testing.T) {
	views := ClassifyRateLimits(map[models.RateWindow]models.RateLimitWindow{
		models.PerMinute: window(0, 0),
	})
	v := views[models.PerMinute]
	if v.Severity != SeverityWarning {
		t.Errorf("zero limit: expected warning, got %s", v.Severity)
	}
	if v.Message != MsgRateExceeded {
		t.Errorf("zero limit: unexpected message: %s", v.Message)
	}
}
