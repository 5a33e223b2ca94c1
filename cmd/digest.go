package cmd

import (
	"context"
	"fmt"
	"time"

	"ghost-archiver/internal/ai"
	"ghost-archiver/internal/ghost"
	"ghost-archiver/internal/redisclient"
	"ghost-archiver/internal/storage"
	"ghost-archiver/worker"

	"github.com/spf13/cobra"
)

var digestTopN int

// digestCmd builds one digest of the most recently archived posts.
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Generate a markdown digest of recently archived posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Ghost.BaseURL == "" {
			return fmt.Errorf("ghost config missing: set ghost.base_url (or GHOST_URL)")
		}
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		var summarizer ai.Summarizer
		if cfg.OpenAI.APIKey != "" {
			summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		}

		topN := cfg.Digest.TopN
		if cmd.Flags().Changed("top") {
			topN = digestTopN
		}
		// Source label mirrors what the syncer records.
		source := ghost.NewClient(cfg.Ghost.BaseURL, cfg.Ghost.APIKey, 0).Source()
		b := &worker.DigestBuilder{
			Store:      store,
			Summarizer: summarizer,
			Source:     source,
			TopN:       topN,
			OutputDir:  cfg.Output.Dir,
			Title:      cfg.Digest.Title,
			Preface:    cfg.Digest.Preface,
			Language:   cfg.Digest.Language,
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := b.RunOnce(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Digest generated.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().IntVar(&digestTopN, "top", 10, "number of posts to include")
}
