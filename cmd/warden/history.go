package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/warden-ai/warden/pkg/config"
	"github.com/warden-ai/warden/pkg/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		since      time.Duration
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "history <agent-id>",
		Short: "Show recorded governance snapshots for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID := args[0]

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			hist, err := history.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = hist.Close() }()

			ctx := cmd.Context()

			if summary {
				sums, err := hist.Summary(ctx, agentID)
				if err != nil {
					return err
				}
				if len(sums) == 0 {
					fmt.Println("No snapshots recorded.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "AGENT\tSAMPLES\tPEAK BUDGET\tLAST BUDGET\tFIRST SEEN\tLAST SEEN")
				for _, s := range sums {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
						s.AgentID, s.Samples, percentCell(s.PeakBudgetPct), percentCell(s.LastBudgetPct),
						s.FirstSeen.Format("2006-01-02T15:04:05"), s.LastSeen.Format("2006-01-02T15:04:05"))
				}
				return w.Flush()
			}

			recs, err := hist.QueryByAgent(ctx, agentID, time.Now().UTC().Add(-since))
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No snapshots recorded in this window.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tBUDGET\tPER MINUTE\tPER HOUR\tPER DAY")
			for _, r := range recs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.CreatedAt.Format("2006-01-02T15:04:05"),
					percentCell(r.BudgetPercent),
					countCell(r.MinuteCurrent), countCell(r.HourCurrent), countCell(r.DayCurrent))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "warden.yaml", "path to config file")
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "how far back to query")
	cmd.Flags().BoolVar(&summary, "summary", false, "show aggregate summary instead of rows")
	return cmd
}

// percentCell formats a recorded budget percentage; -1 marks an
// unconfigured dimension.
func percentCell(pct float64) string {
	if pct < 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

func countCell(n int64) string {
	if n < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
