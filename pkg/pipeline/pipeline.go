// Package pipeline provides the sizing pipeline shared by the CLI and the
// HTTP service.
//
// The pipeline consists of three stages:
//
//  1. Read: decode a TOML or JSON document from a file, stdin, or a request body
//  2. Size: build the layout tree and compute minimum sizes under a viewport
//  3. Render: turn the resulting report into DOT, SVG or PNG
//
// A [Runner] adds caching in front of the size and render stages, keyed by
// the canonical document content and the options that affect the result.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := pipeline.ReadDocument("layout.toml", os.Stdin, "")
//	result, err := runner.Size(ctx, doc, pipeline.Options{Mode: pipeline.ModeMinimum})
//	fmt.Println(result.Report.Width, result.Report.Height)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxsize/pkg/cache"
	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the viewport width used when neither the options nor
	// the document name one.
	DefaultWidth = 800

	// DefaultHeight is the viewport height used when neither the options nor
	// the document name one.
	DefaultHeight = 600

	// DefaultMode is the default sizing mode.
	DefaultMode = ModeMinimum

	// DefaultTTL is how long sizing results stay cached.
	DefaultTTL = 24 * time.Hour
)

// Mode selects the root context a sizing pass runs under.
type Mode string

const (
	// ModeMinimum sizes the root against the minimum variant of the viewport
	// context, so nothing grows to fill available space.
	ModeMinimum Mode = "minimum"

	// ModeNatural sizes the root against the plain viewport context; the
	// root's children may fill the extent the root desires.
	ModeNatural Mode = "natural"
)

// Modes lists the supported sizing modes.
var Modes = []string{string(ModeMinimum), string(ModeNatural)}

// Context returns the root context for a width x height viewport.
func (m Mode) Context(width, height int) layout.Context {
	ctx := layout.NewContext(layout.FixedScalar(width), layout.FixedScalar(height))
	if m == ModeMinimum {
		return ctx.AsMinimum()
	}
	return ctx
}

// =============================================================================
// Options
// =============================================================================

// Options configures a sizing pass. Zero values take defaults from the
// document viewport first and the package defaults second.
type Options struct {
	Width   int  `json:"width,omitempty"`
	Height  int  `json:"height,omitempty"`
	Mode    Mode `json:"mode,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	TTL    time.Duration `json:"-"`
	Logger *log.Logger   `json:"-"`
}

// SetDefaults fills zero fields. vp is the viewport the document declares;
// its zero fields are skipped.
func (o *Options) SetDefaults(vp document.Viewport) {
	if o.Width == 0 {
		o.Width = vp.Width
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = vp.Height
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the viewport and the mode.
func (o *Options) Validate() error {
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	return errors.ValidateMode(string(o.Mode), Modes...)
}

// Viewport returns the resolved viewport.
func (o *Options) Viewport() document.Viewport {
	return document.Viewport{Width: o.Width, Height: o.Height}
}

// SizeKeyOpts returns cache key options for a sizing result.
func (o *Options) SizeKeyOpts() cache.SizeKeyOpts {
	return cache.SizeKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Mode:   string(o.Mode),
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a sizing pass.
type Result struct {
	// Report is the serialized sizing result.
	Report *document.Report

	// DocHash is the content hash of the canonical document.
	DocHash string

	// CacheHit reports whether Report came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes     int
	BuildTime time.Duration
	SizeTime  time.Duration
}
