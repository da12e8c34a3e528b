package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/warden-ai/warden/pkg/config"
	"github.com/warden-ai/warden/pkg/history"
	"github.com/warden-ai/warden/pkg/models"
	"github.com/warden-ai/warden/pkg/poller"
)

func newWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch [agent-id...]",
		Short: "Poll governance status and re-render on every refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Agents = args
			}
			if len(cfg.Agents) == 0 {
				return fmt.Errorf("no agents to watch: pass agent ids or set them in config")
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
			hist, err := history.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = hist.Close() }()

			p := poller.New(c, cache, hist, cfg)
			p.OnStatus = func(agentID string, status *models.GovernanceStatus) {
				_ = renderStatus(os.Stdout, agentID, status)
				fmt.Println()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %d agent(s) every %s. Ctrl-C to stop.\n\n", len(cfg.Agents), cfg.Poll.StatusInterval)
			p.Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "warden.yaml", "path to config file")
	return cmd
}
