package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"ghost-archiver/internal/archive"
	"ghost-archiver/internal/ghost"
	"ghost-archiver/internal/imageutil"

	"github.com/spf13/cobra"
)

var (
	pullLimit    int
	pullOutput   string
	pullJSON     bool
	pullText     bool
	pullIndex    bool
	pullMarkdown bool
	pullImages   bool
)

// pullCmd runs the one-shot fetch-and-persist flow.
var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch all posts and archive them to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Ghost.APIKey == "" || cfg.Ghost.BaseURL == "" {
			return fmt.Errorf("ghost config missing: set ghost.api_key and ghost.base_url (or GHOST_CONTENT_API_KEY / GHOST_URL)")
		}
		timeout, err := time.ParseDuration(cfg.Ghost.Timeout)
		if err != nil {
			return fmt.Errorf("invalid ghost.timeout: %w", err)
		}

		// Flags override config only when set on the command line.
		limit := cfg.Ghost.Limit
		if cmd.Flags().Changed("limit") {
			limit = pullLimit
		}
		out := cfg.Output
		if cmd.Flags().Changed("output") {
			out.Dir = pullOutput
		}
		if cmd.Flags().Changed("json") {
			out.JSON = pullJSON
		}
		if cmd.Flags().Changed("text") {
			out.Text = pullText
		}
		if cmd.Flags().Changed("index") {
			out.Index = pullIndex
		}
		if cmd.Flags().Changed("markdown") {
			out.Markdown = pullMarkdown
		}
		if cmd.Flags().Changed("images") {
			out.Images = pullImages
		}

		cli := ghost.NewClient(cfg.Ghost.BaseURL, cfg.Ghost.APIKey, timeout)
		ctx := context.Background()
		posts, err := cli.AllPosts(ctx, limit)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No posts fetched; nothing to write.")
			return nil
		}

		w := archive.NewWriter(archive.Options{
			Dir:      out.Dir,
			JSON:     out.JSON,
			Text:     out.Text,
			Index:    out.Index,
			Markdown: out.Markdown,
			Source:   cli.Source(),
		})
		if err := w.WriteAll(posts); err != nil {
			return err
		}
		if out.Images {
			ia := imageutil.NewArchiver(filepath.Join(out.Dir, "images"), out.WebPQuality, timeout)
			ok := ia.ArchivePostImages(ctx, posts)
			fmt.Fprintf(cmd.OutOrStdout(), "Images archived for %d/%d posts\n", ok, len(posts))
		}
		abs, err := filepath.Abs(out.Dir)
		if err != nil {
			abs = out.Dir
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Archived %d posts to %s\n", len(posts), abs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
	pullCmd.Flags().IntVarP(&pullLimit, "limit", "n", 0, "max posts to fetch (0 = all)")
	pullCmd.Flags().StringVarP(&pullOutput, "output", "o", "", "output directory")
	pullCmd.Flags().BoolVar(&pullJSON, "json", true, "write the full JSON dump")
	pullCmd.Flags().BoolVar(&pullText, "text", true, "write per-post txt files")
	pullCmd.Flags().BoolVar(&pullIndex, "index", true, "write index.json")
	pullCmd.Flags().BoolVar(&pullMarkdown, "markdown", false, "write per-post markdown files")
	pullCmd.Flags().BoolVar(&pullImages, "images", false, "download post images")
}
