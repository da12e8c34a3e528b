package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warden-ai/warden/pkg/config"
)

func newInvokeCmd() *cobra.Command {
	var (
		configPath  string
		payloadPath string
	)

	cmd := &cobra.Command{
		Use:   "invoke <agent-id>",
		Short: "Trigger a manual agent invocation",
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

			var payload []byte
			if payloadPath != "" {
				payload, err = os.ReadFile(payloadPath)
				if err != nil {
					return fmt.Errorf("read payload: %w", err)
				}
			}

			result, err := c.InvokeAgent(cmd.Context(), agentID, payload)
			if err != nil {
				return err
			}

			// The invocation moved the backend's usage counters, so any
			// cached governance snapshot for this agent is now stale.
			cache, err := openCache(cfg)
			if err != nil {
				return err
			}
			if cache != nil {
				defer func() { _ = cache.Close() }()
				if err := cache.Invalidate(agentID); err != nil {
					return err
				}
			}

			fmt.Printf("Invocation %s: %s\n", result.InvocationID, result.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "warden.yaml", "path to config file")
	cmd.Flags().StringVarP(&payloadPath, "payload", "p", "", "path to a JSON payload file")
	return cmd
}
