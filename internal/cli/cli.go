// Package cli implements the boxsize command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxsize/pkg/buildinfo"
	"github.com/matzehuels/boxsize/pkg/cache"
	"github.com/matzehuels/boxsize/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "boxsize"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "boxsize computes minimum sizes of nested box layouts",
		Long: `boxsize reads a tree of boxes from a TOML or JSON document and computes
the minimum size of every box under a viewport, honoring explicit sizes,
min/max constraints, padding, gaps and stacking direction.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/boxsize/config.toml)")

	root.AddCommand(c.sizeCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache returns the local file cache, or a null cache when caching is
// disabled or no cache directory can be determined.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newRedisCache connects to the Redis server named by addr, falling back to
// the config file.
func (c *CLI) newRedisCache(ctx context.Context, addr string) (*cache.RedisCache, error) {
	opts := cache.RedisOptions{
		Addr:     c.cfg.Redis.Addr,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
		Prefix:   c.cfg.Redis.Prefix,
	}
	if addr != "" {
		opts.Addr = addr
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultRedisPrefix
	}
	return cache.NewRedisCache(ctx, opts)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/boxsize/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// sizeFlags are the flags shared by every command that sizes a document.
type sizeFlags struct {
	width   int
	height  int
	mode    string
	format  string
	noCache bool
	refresh bool
}

func (f *sizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 0, "viewport width in pixels (default from document, then 800)")
	cmd.Flags().IntVar(&f.height, "height", 0, "viewport height in pixels (default from document, then 600)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "sizing mode: minimum or natural (default minimum)")
	cmd.Flags().StringVar(&f.format, "format", "", "document format: toml or json (default from extension)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// options merges flags over the config file. Remaining zero fields take
// their defaults from the document in the pipeline.
func (c *CLI) options(f *sizeFlags) pipeline.Options {
	opts := pipeline.Options{
		Width:   c.cfg.Width,
		Height:  c.cfg.Height,
		Mode:    pipeline.Mode(c.cfg.Mode),
		Refresh: f.refresh,
		TTL:     c.cfg.Cache.TTL,
		Logger:  c.Logger,
	}
	if f.width != 0 {
		opts.Width = f.width
	}
	if f.height != 0 {
		opts.Height = f.height
	}
	if f.mode != "" {
		opts.Mode = pipeline.Mode(f.mode)
	}
	return opts
}
