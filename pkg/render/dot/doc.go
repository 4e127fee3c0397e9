// Package dot renders sizing reports as Graphviz node-link diagrams.
//
// Every node of the sized tree becomes a box labelled with its id and
// minimum size; edges run from parent to child. Measured leaves are tinted
// and nodes whose size came from a measured ancestor are drawn dashed.
//
// # Usage
//
//	src := dot.ToDOT(report, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(src)
//
// [Render] dispatches on an output format name, which is how the CLI and
// the pipeline runner use this package.
//
// # Dependencies
//
// SVG and PNG output use [github.com/goccy/go-graphviz], which embeds
// Graphviz as WebAssembly; no system Graphviz installation is needed.
package dot
