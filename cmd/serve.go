package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ghost-archiver/internal/ai"
	"ghost-archiver/internal/archive"
	"ghost-archiver/internal/ghost"
	"ghost-archiver/internal/imageutil"
	"ghost-archiver/internal/redisclient"
	"ghost-archiver/internal/storage"
	"ghost-archiver/worker"

	"github.com/spf13/cobra"
)

var serveWithDigest bool

// serveCmd runs the periodic sync worker (and optionally a digest builder).
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the periodic archive sync service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Ghost.APIKey == "" || cfg.Ghost.BaseURL == "" {
			return fmt.Errorf("ghost config missing: set ghost.api_key and ghost.base_url (or GHOST_CONTENT_API_KEY / GHOST_URL)")
		}
		timeout, err := time.ParseDuration(cfg.Ghost.Timeout)
		if err != nil {
			return fmt.Errorf("invalid ghost.timeout: %w", err)
		}
		interval, err := time.ParseDuration(cfg.Sync.Interval)
		if err != nil {
			return fmt.Errorf("invalid sync.interval: %w", err)
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		cli := ghost.NewClient(cfg.Ghost.BaseURL, cfg.Ghost.APIKey, timeout)
		w := archive.NewWriter(archive.Options{
			Dir:      cfg.Output.Dir,
			JSON:     cfg.Output.JSON,
			Text:     cfg.Output.Text,
			Index:    cfg.Output.Index,
			Markdown: cfg.Output.Markdown,
			Source:   cli.Source(),
		})
		syncer := &worker.ArchiveSyncer{
			Client:   cli,
			Writer:   w,
			Store:    store,
			Source:   cli.Source(),
			Limit:    cfg.Ghost.Limit,
			Interval: interval,
		}
		if cfg.Output.Images {
			syncer.Images = imageutil.NewArchiver(filepath.Join(cfg.Output.Dir, "images"), cfg.Output.WebPQuality, timeout)
		}

		ws := []worker.Worker{syncer}
		if serveWithDigest {
			var summarizer ai.Summarizer
			if cfg.OpenAI.APIKey != "" {
				summarizer = ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
			}
			ws = append(ws, &worker.DigestBuilder{
				Store:      store,
				Summarizer: summarizer,
				Source:     cli.Source(),
				TopN:       cfg.Digest.TopN,
				OutputDir:  cfg.Output.Dir,
				Title:      cfg.Digest.Title,
				Preface:    cfg.Digest.Preface,
				Language:   cfg.Digest.Language,
				Interval:   24 * time.Hour,
			})
		}

		slog.Info("serve: starting sync service", "source", cli.Source(), "interval", interval, "workers", len(ws))
		mgr := worker.NewManager(ws...)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("serve: received signal, shutting down", "signal", s.String())
			cancel()
		}()

		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveWithDigest, "with-digest", false, "also run the daily digest builder")
}
