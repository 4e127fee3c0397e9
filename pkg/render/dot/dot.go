package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/errors"
)

// Output formats understood by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG}

// Options configures diagram generation.
type Options struct {
	// Detailed adds direction and explicit style values to node labels.
	// When false, labels carry only the id and minimum size.
	Detailed bool
}

// ToDOT converts a report to Graphviz DOT source.
func ToDOT(r *document.Report, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	fmt.Fprintf(&buf, "  label=%q;\n", fmt.Sprintf("%s %dx%d in %dx%d", r.Mode, r.Width, r.Height, r.Viewport.Width, r.Viewport.Height))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("\n")

	var edges []string
	var walk func(nr document.NodeReport)
	walk = func(nr document.NodeReport) {
		fmt.Fprintf(&buf, "  %q [%s];\n", nr.ID, strings.Join(fmtAttrs(nr, fmtLabel(nr, opts.Detailed)), ", "))
		for _, c := range nr.Children {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", nr.ID, c.ID))
			walk(c)
		}
	}
	walk(r.Root)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(nr document.NodeReport, detailed bool) string {
	label := fmt.Sprintf("%s\n%dx%d", nr.ID, nr.MinWidth, nr.MinHeight)
	if !detailed {
		return label
	}

	parts := []string{"direction: " + nr.Direction}
	s := nr.Style
	for _, kv := range [][2]string{
		{"width", s.Width}, {"height", s.Height},
		{"min_width", s.MinWidth}, {"max_width", s.MaxWidth},
		{"min_height", s.MinHeight}, {"max_height", s.MaxHeight},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+": "+kv[1])
		}
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(nr document.NodeReport, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case nr.Skipped:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case nr.Measured:
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// Render converts DOT source into the requested format. FormatDOT returns
// the source unchanged.
func Render(src string, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		return RenderSVG(src)
	case FormatPNG:
		return RenderPNG(src)
	default:
		return nil, errors.ValidateFormat(format, Formats...)
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(src string) ([]byte, error) {
	out, err := render(src, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to a PNG image using Graphviz.
func RenderPNG(src string) ([]byte, error) {
	return render(src, graphviz.PNG)
}

func render(src string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> element so the drawing starts at
// the origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
