package cmd

import "github.com/spf13/cobra"

// cacheCmd groups Redis sync-state subcommands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Sync-state cache utilities",
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
