package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cachepkg "github.com/warden-ai/warden/pkg/cache/sqlite"
	"github.com/warden-ai/warden/pkg/client"
	"github.com/warden-ai/warden/pkg/config"
	"github.com/warden-ai/warden/pkg/governance"
	"github.com/warden-ai/warden/pkg/models"
)

func newStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status <agent-id>",
		Short: "Show governance status for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID := args[0]

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c, err := newClient(cfg)
			if err != nil {
				return err
			}
			cache, err := openCache(cfg)
			if err != nil {
				return err
			}
			if cache != nil {
				defer func() { _ = cache.Close() }()
			}

			status, err := fetchStatus(cmd.Context(), c, cache, agentID)
			if errors.Is(err, client.ErrUnavailable) {
				fmt.Println("Governance status unavailable: backend unreachable.")
				return nil
			}
			if err != nil {
				return err
			}

			return renderStatus(os.Stdout, agentID, status)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "warden.yaml", "path to config file")
	return cmd
}

// fetchStatus returns the governance snapshot for an agent, serving
// from the cache when a fresh entry exists and writing through on a
// successful backend fetch.
func fetchStatus(ctx context.Context, c *client.Client, cache *cachepkg.Cache, agentID string) (*models.GovernanceStatus, error) {
	if cache != nil {
		if payload, ok := cache.Get(agentID, cachepkg.KindGovernance); ok {
			var status models.GovernanceStatus
			if err := json.Unmarshal(payload, &status); err == nil {
				return &status, nil
			}
			// Undecodable cache entries are treated as misses.
		}
	}

	status, err := c.GovernanceStatus(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if status != nil && cache != nil {
		if payload, err := json.Marshal(status); err == nil {
			_ = cache.Put(agentID, cachepkg.KindGovernance, payload)
		}
	}
	return status, nil
}

// renderStatus prints the classified governance state. A nil status
// means no governance configuration exists at all; the classifiers
// report Unset per dimension either way.
func renderStatus(out io.Writer, agentID string, status *models.GovernanceStatus) error {
	var budgetUsage *models.BudgetUsage
	var rateLimits map[models.RateWindow]models.RateLimitWindow
	if status != nil {
		budgetUsage = status.BudgetUsage
		rateLimits = status.RateLimits
	}

	budget := governance.ClassifyBudget(budgetUsage)
	rates := governance.ClassifyRateLimits(rateLimits)

	fmt.Fprintf(out, "Agent: %s\n\n", agentID)

	fmt.Fprintln(out, "BUDGET")
	if budget.Severity == governance.SeverityUnset {
		fmt.Fprintf(out, "  %s\n", budget.CapLabel)
	} else {
		fmt.Fprintf(out, "  Usage: %s  (%s)  [%s]\n", budget.DisplayPercentage, budget.CapLabel, budget.Severity)
		if budget.Message != "" {
			fmt.Fprintf(out, "  %s\n", budget.Message)
		}
	}

	fmt.Fprintln(out, "\nRATE LIMITS")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  WINDOW\tUSAGE\tREMAINING\tSTATUS\tNOTE")
	for _, window := range models.Windows {
		v := rates[window]
		usage, remaining := v.RatioLabel, v.RemainingLabel
		if v.Severity == governance.SeverityUnset {
			usage, remaining = "-", "-"
		}
		note := v.Message
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", window, usage, remaining, v.Severity, note)
	}
	return w.Flush()
}
