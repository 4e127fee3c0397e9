package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/boxsize/pkg/layout"
)

// Report is the serialized result of a sizing pass.
type Report struct {
	Viewport Viewport   `json:"viewport"`
	Mode     string     `json:"mode"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Nodes    int        `json:"nodes"`
	Root     NodeReport `json:"root"`
}

// NodeReport is the sizing result of one node.
type NodeReport struct {
	ID        string       `json:"id"`
	Direction string       `json:"direction"`
	Style     StyleSummary `json:"style,omitzero"`
	MinWidth  int          `json:"min_width"`
	MinHeight int          `json:"min_height"`
	Measured  bool         `json:"measured,omitempty"`
	// Skipped is set for nodes below a measured ancestor, which never
	// contribute to a size.
	Skipped  bool         `json:"skipped,omitempty"`
	Children []NodeReport `json:"children,omitempty"`
}

// StyleSummary echoes the declared length constraints of a node.
type StyleSummary struct {
	Width     string `json:"width,omitempty"`
	Height    string `json:"height,omitempty"`
	MinWidth  string `json:"min_width,omitempty"`
	MaxWidth  string `json:"max_width,omitempty"`
	MinHeight string `json:"min_height,omitempty"`
	MaxHeight string `json:"max_height,omitempty"`
}

// NewReport captures the sizes cached on root and its descendants after a
// sizing pass. size is the value ComputeSize returned for root.
func NewReport(root *layout.Node, viewport Viewport, mode string, size layout.Size) *Report {
	r := &Report{
		Viewport: viewport,
		Mode:     mode,
		Width:    int(size.Width),
		Height:   int(size.Height),
		Root:     reportNode(root, false),
	}
	root.Walk(func(*layout.Node, int) bool {
		r.Nodes++
		return true
	})
	return r
}

func reportNode(n *layout.Node, skipped bool) NodeReport {
	s := n.Style()
	nr := NodeReport{
		ID:        n.ID(),
		Direction: s.Direction.String(),
		Style: StyleSummary{
			Width:     formatScalar(s.Width),
			Height:    formatScalar(s.Height),
			MinWidth:  formatScalar(s.MinWidth),
			MaxWidth:  formatScalar(s.MaxWidth),
			MinHeight: formatScalar(s.MinHeight),
			MaxHeight: formatScalar(s.MaxHeight),
		},
		Skipped: skipped,
	}

	if size, ok := n.CachedSize(); ok && !skipped {
		nr.MinWidth = int(size.Width)
		nr.MinHeight = int(size.Height)
	} else {
		nr.Skipped = true
	}
	nr.Measured = n.Measured()

	for _, c := range n.Children() {
		nr.Children = append(nr.Children, reportNode(c, nr.Skipped || nr.Measured))
	}
	return nr
}

// Find returns the report of the node with the given id.
func (r *Report) Find(id string) (NodeReport, bool) {
	return r.Root.find(id)
}

func (nr NodeReport) find(id string) (NodeReport, bool) {
	if nr.ID == id {
		return nr, true
	}
	for _, c := range nr.Children {
		if found, ok := c.find(id); ok {
			return found, true
		}
	}
	return NodeReport{}, false
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes the report as JSON to path.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return r.WriteJSON(f)
}

// ReadReport decodes a report written by WriteJSON.
func ReadReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}
