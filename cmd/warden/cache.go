package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warden-ai/warden/pkg/config"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the snapshot cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c, err := openCache(cfg)
			if err != nil {
				return err
			}
			if c == nil {
				fmt.Println("Cache is disabled.")
				return nil
			}
			defer func() { _ = c.Close() }()

			stats, err := c.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("Entries: %d\nHits:    %d\nMisses:  %d\n", stats.Entries, stats.Hits, stats.Misses)
			return nil
		},
	}

	var expiredOnly bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c, err := openCache(cfg)
			if err != nil {
				return err
			}
			if c == nil {
				fmt.Println("Cache is disabled.")
				return nil
			}
			defer func() { _ = c.Close() }()

			if err := c.Clear(expiredOnly); err != nil {
				return err
			}
			if expiredOnly {
				fmt.Println("Expired cache entries cleared.")
			} else {
				fmt.Println("Cache cleared.")
			}
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expiredOnly, "expired-only", false, "only remove expired entries")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "warden.yaml", "path to config file")
	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}
