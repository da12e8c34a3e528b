package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	cachepkg "github.com/warden-ai/warden/pkg/cache/sqlite"
	"github.com/warden-ai/warden/pkg/client"
	"github.com/warden-ai/warden/pkg/config"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "warden",
		Short:   "Warden — governance console for externally invoked agents",
		Version: version,
	}

	root.AddCommand(
		newStatusCmd(),
		newLineageCmd(),
		newWatchCmd(),
		newAgentsCmd(),
		newInvokeCmd(),
		newHistoryCmd(),
		newCacheCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds the backend client from config.
func newClient(cfg *config.Config) (*client.Client, error) {
	return client.New(cfg.BackendURL, cfg.APIToken)
}

// openCache opens the snapshot cache, or returns nil when caching is
// disabled in config.
func openCache(cfg *config.Config) (*cachepkg.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	return cachepkg.New(cfg.DBPath, map[cachepkg.Kind]time.Duration{
		cachepkg.KindGovernance: cfg.Cache.StatusTTL,
		cachepkg.KindLineage:    cfg.Cache.LineageTTL,
	})
}
