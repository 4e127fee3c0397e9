package pipeline

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/matzehuels/boxsize/pkg/cache"
	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/observability"
	"github.com/matzehuels/boxsize/pkg/render/dot"
)

// RenderOptions configures diagram output.
type RenderOptions struct {
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// SetDefaults selects DOT output when no format is given.
func (o *RenderOptions) SetDefaults() {
	if o.Format == "" {
		o.Format = dot.FormatDOT
	}
	o.Format = strings.ToLower(o.Format)
}

// Validate checks the output format.
func (o *RenderOptions) Validate() error {
	return errors.ValidateFormat(o.Format, dot.Formats...)
}

// RenderKeyOpts returns cache key options for a rendered artifact.
func (o *RenderOptions) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Format: o.Format, Detailed: o.Detailed}
}

// Render draws report as a node-link diagram without caching.
func Render(report *document.Report, opts RenderOptions) ([]byte, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return dot.Render(dot.ToDOT(report, dot.Options{Detailed: opts.Detailed}), opts.Format)
}

// Render draws report through the cache. DOT source is cheap and is never
// cached; SVG and PNG artifacts are. The bool reports a cache hit.
func (r *Runner) Render(ctx context.Context, report *document.Report, opts RenderOptions) ([]byte, bool, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if opts.Format == dot.FormatDOT {
		out, err := Render(report, opts)
		return out, false, err
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	key := r.Keyer.RenderKey(cache.Hash(buf.Bytes()), opts.RenderKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyTypeRender)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeRender)

	start := time.Now()
	out, err := Render(report, opts)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered diagram", "format", opts.Format, "bytes", len(out), "duration", time.Since(start))

	r.store(ctx, key, keyTypeRender, out, DefaultTTL, r.Logger)
	return out, false, nil
}
