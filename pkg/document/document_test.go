package document

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/layout"
)

func mustLoad(t *testing.T, name string) *Document {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Load(%s) error: %v", name, err)
	}
	return doc
}

func mustBuild(t *testing.T, doc *Document) *layout.Node {
	t.Helper()
	root, err := doc.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return root
}

func TestLoadAndSize(t *testing.T) {
	tests := []struct {
		file    string
		natural bool
		want    layout.Size
	}{
		{file: "nested.toml", want: layout.NewSize(200, 200)},
		{file: "stretch.json", natural: true, want: layout.NewSize(200, 1000)},
		{file: "stretch.json", want: layout.NewSize(200, 100)},
		{file: "toolbar.toml", want: layout.NewSize(184, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc := mustLoad(t, tt.file)
			root := mustBuild(t, doc)

			ctx := layout.NewContext(layout.FixedScalar(doc.Viewport.Width), layout.FixedScalar(doc.Viewport.Height))
			if !tt.natural {
				ctx = ctx.AsMinimum()
			}
			if got := root.ComputeSize(ctx); got != tt.want {
				t.Errorf("ComputeSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildStyle(t *testing.T) {
	doc := mustLoad(t, "toolbar.toml")
	root := mustBuild(t, doc)

	s := root.Style()
	if s.Direction != layout.X {
		t.Errorf("Direction = %v, want x", s.Direction)
	}
	if s.Padding == nil || *s.Padding != 4 {
		t.Errorf("Padding = %v, want 4", s.Padding)
	}
	if s.Gap == nil || *s.Gap != 8 {
		t.Errorf("Gap = %v, want 8", s.Gap)
	}
	if s.Align == nil || *s.Align != layout.AlignBoth(layout.HStart, layout.VCenter) {
		t.Errorf("Align = %v, want start:center", s.Align)
	}
	if root.Len() != 3 {
		t.Errorf("Len() = %d, want 3", root.Len())
	}
	if doc.Count() != 4 {
		t.Errorf("Count() = %d, want 4", doc.Count())
	}
}

func TestBuildGeneratesStableIDs(t *testing.T) {
	const src = `{"root": {"children": [{"width": 10}, {"width": 20}]}}`

	ids := func() []string {
		doc, err := Parse([]byte(src), FormatJSON)
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		var out []string
		mustBuild(t, doc).Walk(func(n *layout.Node, _ int) bool {
			out = append(out, n.ID())
			return true
		})
		return out
	}

	first, second := ids(), ids()
	if len(first) != 3 {
		t.Fatalf("got %d ids, want 3", len(first))
	}
	seen := map[string]bool{}
	for i := range first {
		if first[i] == "" {
			t.Errorf("node %d has an empty id", i)
		}
		if first[i] != second[i] {
			t.Errorf("id %d changed between builds: %q vs %q", i, first[i], second[i])
		}
		if seen[first[i]] {
			t.Errorf("duplicate generated id %q", first[i])
		}
		seen[first[i]] = true
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantPath string
	}{
		{
			name:     "bad direction",
			src:      `{"root": {"children": [{"direction": "w"}]}}`,
			wantPath: "root.children[0].direction",
		},
		{
			name:     "bad align",
			src:      `{"root": {"align": "middle"}}`,
			wantPath: "root.align",
		},
		{
			name:     "bad anchor",
			src:      `{"root": {"children": [{}, {"anchor": "left"}]}}`,
			wantPath: "root.children[1].anchor",
		},
		{
			name:     "duplicate id",
			src:      `{"root": {"id": "a", "children": [{"id": "a"}]}}`,
			wantPath: "duplicate id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src), FormatJSON)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			_, err = doc.Build()
			if err == nil {
				t.Fatal("Build() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDocument)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
	}{
		{name: "toml", src: "[root]\nwidht = 10\n", format: FormatTOML},
		{name: "json", src: `{"root": {"widht": 10}}`, format: FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("Parse() error = %v, want %v", err, errors.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestDecodeInvalidLength(t *testing.T) {
	_, err := Parse([]byte("[root]\nwidth = \"12em\"\n"), FormatTOML)
	if err == nil {
		t.Fatal("Parse() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "12em") {
		t.Errorf("error %q does not mention the bad length", err)
	}
}

func TestCanonicalIgnoresSourceFormat(t *testing.T) {
	tomlDoc, err := Parse([]byte(`
[viewport]
width = 640
height = 480

[root]
id = "r"
direction = "x"
min_width = "25%"

  [[root.children]]
  width = 10
`), FormatTOML)
	if err != nil {
		t.Fatalf("Parse(toml) error: %v", err)
	}

	jsonDoc, err := Parse([]byte(`{
  "viewport": {"width": 640, "height": 480},
  "root": {"id": "r", "direction": "x", "min_width": "25%", "children": [{"width": "10px"}]}
}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse(json) error: %v", err)
	}

	a, err := tomlDoc.Canonical()
	if err != nil {
		t.Fatalf("Canonical() error: %v", err)
	}
	b, err := jsonDoc.Canonical()
	if err != nil {
		t.Fatalf("Canonical() error: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("canonical forms differ:\n%s\n%s", a, b)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
	if _, err := Load(filepath.Join("testdata", "nested.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(yaml) error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		ct      string
		want    Format
		wantErr bool
	}{
		{ct: "", want: FormatJSON},
		{ct: "application/json; charset=utf-8", want: FormatJSON},
		{ct: "application/toml", want: FormatTOML},
		{ct: "text/toml", want: FormatTOML},
		{ct: "text/html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ct, func(t *testing.T) {
			got, err := FormatFromContentType(tt.ct)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromContentType(%q) error = %v, wantErr %v", tt.ct, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromContentType(%q) = %q, want %q", tt.ct, got, tt.want)
			}
		})
	}
}
