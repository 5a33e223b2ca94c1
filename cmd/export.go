package cmd

import (
	"fmt"
	"path/filepath"

	"ghost-archiver/internal/archive"
	"ghost-archiver/internal/markdown"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportVerify bool
)

// exportCmd regenerates txt/markdown/index artifacts from an existing JSON
// dump, without touching the network.
var exportCmd = &cobra.Command{
	Use:   "export <dump.json>",
	Short: "Re-export artifacts from a saved JSON dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		doc, err := archive.ReadDump(args[0])
		if err != nil {
			return err
		}
		if len(doc.Posts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Dump contains no posts; nothing to write.")
			return nil
		}
		dir := cfg.Output.Dir
		if exportOutput != "" {
			dir = exportOutput
		}
		w := archive.NewWriter(archive.Options{
			Dir:      dir,
			Text:     cfg.Output.Text,
			Index:    cfg.Output.Index,
			Markdown: true,
			Source:   doc.Metadata.Source,
		})
		if err := w.WriteAll(doc.Posts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d posts from %s to %s\n", len(doc.Posts), args[0], dir)

		if exportVerify {
			// Parse each written markdown file back to confirm round-trip.
			for _, p := range doc.Posts {
				path := filepath.Join(dir, "md", archive.FileStem(p)+".md")
				d, err := markdown.ParseFile(path)
				if err != nil {
					return fmt.Errorf("verify %s: %w", path, err)
				}
				if got, _ := d.Frontmatter["slug"].(string); got != p.Slug {
					return fmt.Errorf("verify %s: slug mismatch (got %q, want %q)", path, got, p.Slug)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Verified %d markdown files\n", len(doc.Posts))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output directory (default: output.dir from config)")
	exportCmd.Flags().BoolVar(&exportVerify, "verify", false, "parse written markdown files back after export")
}
