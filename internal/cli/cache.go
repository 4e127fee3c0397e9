package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxsize/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached sizing results",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string
	var useRedis bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached sizing results and renders",
		Example: `  boxsize cache clear
  boxsize cache clear --redis localhost:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if useRedis || redisAddr != "" {
				rc, err := c.newRedisCache(ctx, redisAddr)
				if err != nil {
					return err
				}
				defer rc.Close()
				return clearCache(cmd, rc, "redis")
			}

			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo(out, "Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := clearCache(cmd, fc, "file"); err != nil {
				return err
			}
			printDetail(out, "Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useRedis, "redis", false, "clear the Redis cache named in the config file")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "clear the Redis cache at this address")

	return cmd
}

func clearCache(cmd *cobra.Command, cl cache.Clearer, kind string) error {
	n, err := cl.Clear(cmd.Context())
	if err != nil {
		return fmt.Errorf("clear %s cache: %w", kind, err)
	}
	loggerFromContext(cmd.Context()).Debug("cache cleared", "backend", kind, "entries", n)
	printSuccess(cmd.OutOrStdout(), "Cleared %d cached entries", n)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
