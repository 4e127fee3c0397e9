package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/layout"
	"github.com/matzehuels/boxsize/pkg/pipeline"
)

const (
	defaultStep  = 10
	maxStep      = 1000
	pollInterval = 500 * time.Millisecond
)

var (
	watchHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	watchHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	watchErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags sizeFlags

	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Resize the viewport interactively and watch sizes change",
		Long: `Open an interactive view of a layout document. Arrow keys grow and shrink
the viewport, and the document is re-read whenever the file changes.

The tree is built once per load, so resizing reuses every cached size that
the new viewport does not affect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == pipeline.StdinPath {
				return errors.New(errors.ErrCodeInvalidInput, "watch needs a file, not stdin")
			}
			m, err := newWatchModel(args[0], flags.format, c.options(&flags))
			if err != nil {
				return err
			}
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// watchModel
// =============================================================================

// watchModel keeps one built tree and re-measures it as the viewport
// changes.
type watchModel struct {
	path    string
	format  string
	opts    pipeline.Options
	root    *layout.Node
	report  *document.Report
	elapsed time.Duration
	modTime time.Time
	step    int
	err     error
}

type pollMsg time.Time

func newWatchModel(path, format string, opts pipeline.Options) (watchModel, error) {
	m := watchModel{path: path, format: format, opts: opts, step: defaultStep}
	if err := m.load(); err != nil {
		return m, err
	}
	return m, nil
}

// load reads and builds the document. The first load resolves the viewport
// against the document; later loads keep the viewport the user resized to.
func (m *watchModel) load() error {
	doc, err := pipeline.ReadDocument(m.path, nil, m.format)
	if err != nil {
		return err
	}
	root, err := doc.Build()
	if err != nil {
		return err
	}
	opts := m.opts
	opts.SetDefaults(doc.Viewport)
	if err := opts.Validate(); err != nil {
		return err
	}
	if info, err := os.Stat(m.path); err == nil {
		m.modTime = info.ModTime()
	}
	m.opts = opts
	m.root = root
	m.measure()
	return nil
}

func (m *watchModel) measure() {
	m.report, m.elapsed = pipeline.Measure(m.root, m.opts)
}

func (m *watchModel) resize(dw, dh int) {
	m.opts.Width = max(1, m.opts.Width+dw)
	m.opts.Height = max(1, m.opts.Height+dh)
	m.measure()
}

func (m *watchModel) toggleMode() {
	if m.opts.Mode == pipeline.ModeMinimum {
		m.opts.Mode = pipeline.ModeNatural
	} else {
		m.opts.Mode = pipeline.ModeMinimum
	}
	m.measure()
}

func (m *watchModel) reload() {
	m.err = m.load()
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return poll()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.resize(m.step, 0)
		case "left", "h":
			m.resize(-m.step, 0)
		case "up", "k":
			m.resize(0, -m.step)
		case "down", "j":
			m.resize(0, m.step)
		case "+", "=":
			m.step = min(maxStep, m.step*2)
		case "-", "_":
			m.step = max(1, m.step/2)
		case "m":
			m.toggleMode()
		case "r":
			m.reload()
		}
	case pollMsg:
		if info, err := os.Stat(m.path); err == nil && info.ModTime().After(m.modTime) {
			m.reload()
		}
		return m, poll()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.path))
	b.WriteString("\n")
	b.WriteString(watchHelpStyle.Render(fmt.Sprintf("←/→ width  ↑/↓ height  +/- step (%d)  m mode  r reload  q quit", m.step)))
	b.WriteString("\n\n")

	r := m.report
	fmt.Fprintf(&b, "  %s %s  %s %s  %s %s\n",
		StyleDim.Render("viewport"), StyleValue.Render(fmt.Sprintf("%dx%d", m.opts.Width, m.opts.Height)),
		StyleDim.Render("mode"), StyleHighlight.Render(string(m.opts.Mode)),
		StyleDim.Render("size"), formatSize(r.Width, r.Height))
	fmt.Fprintf(&b, "  %s\n\n", StyleDim.Render(fmt.Sprintf("%d nodes in %s", r.Nodes, m.elapsed.Round(time.Microsecond))))

	b.WriteString(childTable(r.Root).Render())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(watchErrorStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// childTable lists the direct children of root with their minimum sizes.
func childTable(root document.NodeReport) *table.Table {
	rows := make([][]string, 0, len(root.Children))
	for _, c := range root.Children {
		note := ""
		switch {
		case c.Measured:
			note = "measured"
		case c.Skipped:
			note = "skipped"
		}
		rows = append(rows, []string{c.ID, c.Direction, fmt.Sprintf("%dx%d", c.MinWidth, c.MinHeight), note})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Child", "Direction", "Size", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return watchHeaderStyle
			}
			if row < len(root.Children) && root.Children[row].Measured {
				return StyleMeasured
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}
