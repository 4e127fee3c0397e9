package document

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/layout"
)

// Format identifies the encoding of a document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists the supported document formats.
var Formats = []string{string(FormatTOML), string(FormatJSON)}

// nodeNamespace seeds the UUIDs generated for nodes without an id.
var nodeNamespace = uuid.MustParse("7b3f6c1e-2a4d-4f8e-9c0b-5d1e2f3a4b5c")

// Document is a viewport plus a node tree.
type Document struct {
	Viewport Viewport `toml:"viewport" json:"viewport"`
	Cell     Cell     `toml:"cell" json:"cell"`
	Root     Node     `toml:"root" json:"root"`
}

// Viewport is the root size a document is sized against. Zero values mean
// the caller's default applies.
type Viewport struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

// Cell is the pixel size of one terminal cell, used to measure text leaves.
type Cell struct {
	Width  int `toml:"width,omitempty" json:"width,omitempty"`
	Height int `toml:"height,omitempty" json:"height,omitempty"`
}

// Extent is a fixed intrinsic size in pixels.
type Extent struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

// Node describes one layout node and its subtree.
type Node struct {
	ID string `toml:"id,omitempty" json:"id,omitempty"`

	Width     *Length `toml:"width,omitempty" json:"width,omitempty"`
	Height    *Length `toml:"height,omitempty" json:"height,omitempty"`
	MinWidth  *Length `toml:"min_width,omitempty" json:"min_width,omitempty"`
	MaxWidth  *Length `toml:"max_width,omitempty" json:"max_width,omitempty"`
	MinHeight *Length `toml:"min_height,omitempty" json:"min_height,omitempty"`
	MaxHeight *Length `toml:"max_height,omitempty" json:"max_height,omitempty"`

	Padding *int `toml:"padding,omitempty" json:"padding,omitempty"`
	Gap     *int `toml:"gap,omitempty" json:"gap,omitempty"`

	Direction string `toml:"direction,omitempty" json:"direction,omitempty"`
	Align     string `toml:"align,omitempty" json:"align,omitempty"`
	Anchor    string `toml:"anchor,omitempty" json:"anchor,omitempty"`

	// Intrinsic content; any of these turns the node into a measured leaf.
	Measure *Extent `toml:"measure,omitempty" json:"measure,omitempty"`
	Text    string  `toml:"text,omitempty" json:"text,omitempty"`
	Fill    bool    `toml:"fill,omitempty" json:"fill,omitempty"`

	Children []Node `toml:"children,omitempty" json:"children,omitempty"`
}

// =============================================================================
// Decoding
// =============================================================================

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if err := errors.ValidateFormat(ext, Formats...); err != nil {
		return "", err
	}
	return Format(ext), nil
}

// FormatFromContentType picks a format from an HTTP Content-Type header.
// An empty header defaults to JSON.
func FormatFromContentType(ct string) (Format, error) {
	mt, _, _ := strings.Cut(ct, ";")
	switch strings.TrimSpace(strings.ToLower(mt)) {
	case "", "application/json":
		return FormatJSON, nil
	case "application/toml", "text/toml", "application/x-toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported content type %q", ct)
	}
}

// Decode reads a document from r. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return &doc, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte, format Format) (*Document, error) {
	return Decode(bytes.NewReader(data), format)
}

// Load reads a document from a .toml or .json file.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return LoadAs(path, format)
}

// LoadAs reads a document from path, ignoring its extension.
func LoadAs(path string, format Format) (*Document, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Canonical returns the JSON encoding of the document. TOML and JSON sources
// describing the same tree encode identically.
func (d *Document) Canonical() ([]byte, error) {
	return json.Marshal(d)
}

// Count returns the number of nodes in the document tree.
func (d *Document) Count() int {
	return d.Root.count()
}

func (n *Node) count() int {
	total := 1
	for i := range n.Children {
		total += n.Children[i].count()
	}
	return total
}

// =============================================================================
// Building
// =============================================================================

// Build converts the document into a layout tree. Errors name the offending
// node by its path, e.g. "root.children[1].width".
func (d *Document) Build() (*layout.Node, error) {
	b := builder{cell: d.cellSize(), seen: make(map[string]string)}
	return b.build(&d.Root, "root")
}

func (d *Document) cellSize() layout.Size {
	cell := layout.NewSize(1, 1)
	if d.Cell.Width > 0 {
		cell.Width = layout.FixedScalar(d.Cell.Width)
	}
	if d.Cell.Height > 0 {
		cell.Height = layout.FixedScalar(d.Cell.Height)
	}
	return cell
}

type builder struct {
	cell layout.Size
	seen map[string]string // id -> path
}

func (b *builder) build(def *Node, path string) (*layout.Node, error) {
	id := def.ID
	if id == "" {
		id = uuid.NewSHA1(nodeNamespace, []byte(path)).String()
	} else if err := errors.ValidateNodeID(id); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s.id", path)
	}
	if prev, dup := b.seen[id]; dup {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: duplicate id %q (first used at %s)", path, id, prev)
	}
	b.seen[id] = path

	style, err := def.style(path)
	if err != nil {
		return nil, err
	}

	n := layout.NewWithStyle(style).SetID(id)
	if m, ok := b.measurer(def); ok {
		n.SetMeasure(m)
	}

	for i := range def.Children {
		child, err := b.build(&def.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func (n *Node) style(path string) (layout.Style, error) {
	s := layout.NewStyle()

	lengths := []struct {
		name string
		v    *Length
		set  func(layout.Scalar) *layout.Style
	}{
		{"width", n.Width, s.SetWidth},
		{"height", n.Height, s.SetHeight},
		{"min_width", n.MinWidth, s.SetMinWidth},
		{"max_width", n.MaxWidth, s.SetMaxWidth},
		{"min_height", n.MinHeight, s.SetMinHeight},
		{"max_height", n.MaxHeight, s.SetMaxHeight},
	}
	for _, l := range lengths {
		if l.v != nil {
			l.set(l.v.Scalar)
		}
	}

	if n.Padding != nil {
		s.SetPadding(layout.FixedScalar(*n.Padding))
	}
	if n.Gap != nil {
		s.SetGap(layout.FixedScalar(*n.Gap))
	}

	dir, err := ParseDirection(n.Direction)
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s.direction", path)
	}
	s.SetDirection(dir)

	if n.Align != "" {
		a, err := ParseAlign(n.Align)
		if err != nil {
			return s, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s.align", path)
		}
		s.SetAlign(a)
	}
	if n.Anchor != "" {
		a, err := ParseAlign(n.Anchor)
		if err != nil {
			return s, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s.anchor", path)
		}
		s.SetAnchor(a)
	}
	return s, nil
}

// measurer returns the intrinsic-size provider for a leaf, if the node
// declares any content. Where both a measure and text are given, the larger
// extent wins on each axis.
func (b *builder) measurer(def *Node) (layout.Measurer, bool) {
	if def.Measure == nil && def.Text == "" && !def.Fill {
		return nil, false
	}

	var size layout.Size
	if def.Measure != nil {
		size = layout.NewSize(layout.FixedScalar(def.Measure.Width), layout.FixedScalar(def.Measure.Height))
	}
	if def.Text != "" {
		size.Width = max(size.Width, layout.FixedScalar(lipgloss.Width(def.Text))*b.cell.Width)
		size.Height = max(size.Height, layout.FixedScalar(lipgloss.Height(def.Text))*b.cell.Height)
	}

	if def.Fill {
		return layout.FillMeasure(size), true
	}
	return layout.FixedMeasure(size), true
}
