package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cachepkg "github.com/warden-ai/warden/pkg/cache/sqlite"
	"github.com/warden-ai/warden/pkg/client"
	"github.com/warden-ai/warden/pkg/config"
	"github.com/warden-ai/warden/pkg/lineage"
	"github.com/warden-ai/warden/pkg/models"
)

func newLineageCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lineage <agent-id>",
		Short: "Show the invocation lineage graph for an agent",
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

			data, err := fetchLineage(cmd.Context(), c, cache, agentID)
			if errors.Is(err, client.ErrUnavailable) {
				fmt.Println("Lineage unavailable: backend unreachable.")
				return nil
			}
			if err != nil {
				return err
			}
			if data == nil || len(data.Nodes) == 0 {
				fmt.Println("No lineage data yet.")
				return nil
			}

			g := lineage.BuildGraph(data.Nodes, data.Edges)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tLABEL\tICON\tCOLOR\tX\tY")
			for _, n := range g.Nodes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
					n.ID, n.Type, n.Label, n.Icon, n.Color, n.X, n.Y)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(g.Edges) > 0 {
				fmt.Println()
				w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "EDGE\tSOURCE\tTARGET\tLABEL")
				for _, e := range g.Edges {
					label := e.Label
					if label == "" {
						label = "-"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Source, e.Target, label)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if g.DroppedEdges > 0 {
				fmt.Printf("\n%d edge(s) dropped: dangling node references.\n", g.DroppedEdges)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "warden.yaml", "path to config file")
	return cmd
}

// fetchLineage mirrors fetchStatus for the lineage payload.
func fetchLineage(ctx context.Context, c *client.Client, cache *cachepkg.Cache, agentID string) (*models.LineageData, error) {
	if cache != nil {
		if payload, ok := cache.Get(agentID, cachepkg.KindLineage); ok {
			var data models.LineageData
			if err := json.Unmarshal(payload, &data); err == nil {
				return &data, nil
			}
		}
	}

	data, err := c.Lineage(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if data != nil && cache != nil {
		if payload, err := json.Marshal(data); err == nil {
			_ = cache.Put(agentID, cachepkg.KindLineage, payload)
		}
	}
	return data, nil
}
