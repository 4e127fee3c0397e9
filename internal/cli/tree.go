package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/pipeline"
)

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags    sizeFlags
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree <document>",
		Short: "Print the sized box tree",
		Long: `Print every box of a layout document as an indented tree with its minimum
size. Measured leaves are highlighted; boxes under a measured ancestor are
never sized and are shown as skipped.`,
		Example: `  boxsize tree layout.toml
  boxsize tree layout.toml --detailed --mode natural`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pipeline.ReadDocument(args[0], cmd.InOrStdin(), flags.format)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Size(cmd.Context(), doc, c.options(&flags))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTree(res.Report, detailed))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "show direction and explicit style values")

	return cmd
}

var (
	treeEnumeratorStyle = lipgloss.NewStyle().Foreground(colorDim).PaddingRight(1)
	treeIDStyle         = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// renderTree renders a report as a lipgloss tree.
func renderTree(r *document.Report, detailed bool) string {
	t := buildTree(r.Root, detailed).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumeratorStyle)
	header := fmt.Sprintf("%s %s",
		StyleDim.Render(fmt.Sprintf("%s in %dx%d:", r.Mode, r.Viewport.Width, r.Viewport.Height)),
		formatSize(r.Width, r.Height))
	return header + "\n" + t.String()
}

func buildTree(nr document.NodeReport, detailed bool) *tree.Tree {
	t := tree.Root(nodeLabel(nr, detailed))
	for _, c := range nr.Children {
		if len(c.Children) == 0 {
			t.Child(nodeLabel(c, detailed))
			continue
		}
		t.Child(buildTree(c, detailed))
	}
	return t
}

func nodeLabel(nr document.NodeReport, detailed bool) string {
	parts := []string{treeIDStyle.Render(nr.ID)}
	switch {
	case nr.Skipped:
		parts = append(parts, StyleDim.Render("skipped"))
	case nr.Measured:
		parts = append(parts, formatSize(nr.MinWidth, nr.MinHeight), StyleMeasured.Render("measured"))
	default:
		parts = append(parts, formatSize(nr.MinWidth, nr.MinHeight))
	}
	if detailed {
		parts = append(parts, StyleDim.Render(styleDetails(nr)))
	}
	return strings.Join(parts, " ")
}

func styleDetails(nr document.NodeReport) string {
	details := []string{"dir=" + nr.Direction}
	s := nr.Style
	for _, kv := range [][2]string{
		{"w", s.Width}, {"h", s.Height},
		{"min-w", s.MinWidth}, {"max-w", s.MaxWidth},
		{"min-h", s.MinHeight}, {"max-h", s.MaxHeight},
	} {
		if kv[1] != "" {
			details = append(details, kv[0]+"="+kv[1])
		}
	}
	return "(" + strings.Join(details, " ") + ")"
}
