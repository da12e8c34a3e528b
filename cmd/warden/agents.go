package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warden-ai/warden/pkg/client"
	"github.com/warden-ai/warden/pkg/config"
)

func newAgentsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List external agents known to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c, err := newClient(cfg)
			if err != nil {
				return err
			}

			agents, err := c.ListAgents(cmd.Context())
			if errors.Is(err, client.ErrUnavailable) {
				fmt.Println("Agent list unavailable: backend unreachable.")
				return nil
			}
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				fmt.Println("No external agents found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPROVIDER\tSTATUS")
			for _, a := range agents {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Provider, a.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "warden.yaml", "path to config file")
	return cmd
}
