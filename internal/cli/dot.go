package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/pipeline"
	"github.com/matzehuels/boxsize/pkg/render/dot"
)

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags    sizeFlags
		svg      bool
		png      bool
		detailed bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "dot <document>",
		Short: "Render the sized box tree as a Graphviz diagram",
		Long: `Size a layout document and render its tree as Graphviz DOT source, or as
SVG or PNG through an embedded Graphviz.`,
		Example: `  boxsize dot layout.toml | dot -Tpdf > tree.pdf
  boxsize dot layout.toml --svg -o tree.svg
  boxsize dot layout.toml --png --detailed -o tree.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if svg && png {
				return errors.New(errors.ErrCodeInvalidInput, "--svg and --png are mutually exclusive")
			}
			ropts := pipeline.RenderOptions{Format: dot.FormatDOT, Detailed: detailed}
			switch {
			case svg:
				ropts.Format = dot.FormatSVG
			case png:
				ropts.Format = dot.FormatPNG
			}

			doc, err := pipeline.ReadDocument(args[0], cmd.InOrStdin(), flags.format)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := cmd.Context()
			res, err := runner.Size(ctx, doc, c.options(&flags))
			if err != nil {
				return err
			}

			var spinner *Spinner
			if ropts.Format != dot.FormatDOT && output != "" {
				spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Rendering "+ropts.Format+"...")
				spinner.Start()
			}
			data, cached, err := runner.Render(ctx, res.Report, ropts)
			if spinner != nil {
				if err != nil {
					spinner.StopWithError("Rendering failed")
				} else {
					spinner.Stop()
				}
			}
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("rendered", "format", ropts.Format, "bytes", len(data), "cached", cached)

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT source")
	cmd.Flags().BoolVar(&png, "png", false, "render PNG instead of DOT source")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "include direction and style values in labels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}
