package pipeline

import (
	"time"

	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/layout"
)

// Size builds doc into a layout tree and sizes it without caching.
// opts must already carry defaults.
func Size(doc *document.Document, opts Options) (*document.Report, Stats, error) {
	var stats Stats

	start := time.Now()
	root, err := doc.Build()
	if err != nil {
		return nil, stats, err
	}
	stats.BuildTime = time.Since(start)

	report, d := Measure(root, opts)
	stats.SizeTime = d
	stats.Nodes = report.Nodes
	return report, stats, nil
}

// Measure sizes an already built tree under opts and runs the placement
// pass. The tree keeps its cached sizes, so measuring it again under the
// same options reuses them.
func Measure(root *layout.Node, opts Options) (*document.Report, time.Duration) {
	start := time.Now()
	ctx := opts.Mode.Context(opts.Width, opts.Height)
	size := root.ComputeSize(ctx)
	root.ComputeLayout(ctx)
	d := time.Since(start)
	return document.NewReport(root, opts.Viewport(), string(opts.Mode), size), d
}
