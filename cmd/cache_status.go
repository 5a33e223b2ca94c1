package cmd

import (
	"context"
	"fmt"
	"time"

	"ghost-archiver/internal/ghost"
	"ghost-archiver/internal/redisclient"
	"ghost-archiver/internal/storage"

	"github.com/spf13/cobra"
)

// cacheStatusCmd prints sync bookkeeping for the configured source.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show last sync time and archived post count",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Ghost.BaseURL == "" {
			return fmt.Errorf("ghost config missing: set ghost.base_url (or GHOST_URL)")
		}
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		source := ghost.NewClient(cfg.Ghost.BaseURL, cfg.Ghost.APIKey, 0).Source()
		last, err := store.LastSync(ctx, source)
		if err != nil {
			return err
		}
		count, err := store.ArchivedCount(ctx, source)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Source:  %s\n", source)
		if last.IsZero() {
			fmt.Fprintln(cmd.OutOrStdout(), "Last sync: never")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Last sync: %s\n", last.Format(time.RFC3339))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Posts tracked: %d\n", count)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd)
}
