package cmd

import (
	"context"
	"fmt"
	"time"

	"ghost-archiver/internal/redisclient"

	"github.com/spf13/cobra"
)

// cachePingCmd pings the configured Redis server.
var cachePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and print PONG",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePingCmd)
}
