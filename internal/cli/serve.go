package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxsize/pkg/buildinfo"
	"github.com/matzehuels/boxsize/pkg/cache"
	"github.com/matzehuels/boxsize/pkg/pipeline"
	"github.com/matzehuels/boxsize/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sizing API over HTTP",
		Long: `Start an HTTP service that sizes layout documents posted to /v1/size and
renders them through /v1/dot.

Results are cached in Redis when --redis-addr or the [redis] config table
names a server, and in the local file cache otherwise. Cache keys are scoped
by version so that upgrades never serve stale layouts.`,
		Example: `  boxsize serve
  boxsize serve --addr :9090 --redis-addr localhost:6379
  curl -s --data-binary @layout.json localhost:8080/v1/size`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, backend := c.serveCache(cmd, redisAddr, noCache)
			keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()

			cfg := server.Config{
				Addr:           c.cfg.Server.Addr,
				MaxBodyBytes:   c.cfg.Server.MaxBodyBytes,
				RequestTimeout: c.cfg.Server.Timeout,
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if cfg.Addr == "" {
				cfg.Addr = server.DefaultAddr
			}

			logger.Info("listening", "addr", cfg.Addr, "cache", backend, "version", buildinfo.Version)
			return server.New(runner, logger, cfg).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the shared result cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// serveCache picks the cache backend for the service. A Redis server that
// cannot be reached falls back to the file cache with a warning.
func (c *CLI) serveCache(cmd *cobra.Command, redisAddr string, noCache bool) (cache.Cache, string) {
	if noCache {
		return cache.NewNullCache(), "none"
	}
	if redisAddr != "" || c.cfg.Redis.Addr != "" {
		rc, err := c.newRedisCache(cmd.Context(), redisAddr)
		if err == nil {
			return rc, "redis"
		}
		printWarning(cmd.ErrOrStderr(), "Redis unavailable, using file cache: %v", err)
	}
	fc, err := c.newCache(false)
	if err != nil {
		printWarning(cmd.ErrOrStderr(), "File cache unavailable, caching disabled: %v", err)
		return cache.NewNullCache(), "none"
	}
	if _, ok := fc.(*cache.NullCache); ok {
		return fc, "none"
	}
	return fc, "file"
}
