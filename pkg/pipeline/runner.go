package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxsize/pkg/cache"
	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeSize   = "size"
	keyTypeRender = "render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Size sizes doc under opts, consulting the cache first unless
// opts.Refresh is set. Fresh results are written back to the cache.
func (r *Runner) Size(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults(doc.Viewport)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	canonical, err := doc.Canonical()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	result := &Result{DocHash: cache.Hash(canonical)}
	key := r.Keyer.SizeKey(result.DocHash, opts.SizeKeyOpts())

	if !opts.Refresh {
		if report, ok := r.cachedReport(ctx, key, opts.Logger); ok {
			result.Report = report
			result.CacheHit = true
			result.Stats.Nodes = report.Nodes
			opts.Logger.Debug("report from cache", "key", key, "nodes", report.Nodes)
			return result, nil
		}
	}

	nodes := doc.Count()
	observability.Sizing().OnSizeStart(ctx, string(opts.Mode), nodes)
	start := time.Now()
	report, stats, err := Size(doc, opts)
	observability.Sizing().OnSizeComplete(ctx, string(opts.Mode), nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	result.Report = report
	result.Stats = stats

	opts.Logger.Info("sized document",
		"nodes", stats.Nodes,
		"width", report.Width,
		"height", report.Height,
		"mode", opts.Mode,
		"viewport", opts.Viewport(),
		"duration", stats.SizeTime)

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf); err != nil {
		opts.Logger.Warn("encode report for cache", "err", err)
		return result, nil
	}
	r.store(ctx, key, keyTypeSize, buf.Bytes(), opts.TTL, opts.Logger)
	return result, nil
}

// cachedReport returns the report stored under key. Read or decode failures
// count as misses.
func (r *Runner) cachedReport(ctx context.Context, key string, logger *log.Logger) (*document.Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeSize)
		return nil, false
	}
	report, err := document.ReadReport(bytes.NewReader(data))
	if err != nil {
		logger.Warn("discarding unreadable cached report", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeSize)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeSize)
	return report, true
}

// store writes data to the cache. Failures are logged, never returned: a
// result that could not be cached is still a result.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
