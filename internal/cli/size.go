package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxsize/pkg/pipeline"
)

// sizeCommand creates the size command.
func (c *CLI) sizeCommand() *cobra.Command {
	var (
		flags  sizeFlags
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "size <document>",
		Short: "Compute the minimum size of a layout document",
		Long: `Compute the minimum size of every box in a TOML or JSON layout document.

Pass "-" to read the document from stdin. The viewport comes from --width and
--height, then the config file, then the document's [viewport] table.`,
		Example: `  boxsize size layout.toml
  boxsize size layout.toml --width 1280 --height 720 --mode natural
  boxsize size layout.json -o report.json
  cat layout.toml | boxsize size - --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			doc, err := pipeline.ReadDocument(args[0], cmd.InOrStdin(), flags.format)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(ctx))
			res, err := runner.Size(ctx, doc, c.options(&flags))
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Sized %d nodes", res.Report.Nodes))

			if output != "" {
				if err := res.Report.WriteFile(output); err != nil {
					return err
				}
			}

			if asJSON {
				return res.Report.WriteJSON(out)
			}

			r := res.Report
			printSuccess(out, "%s %s", StyleTitle.Render(r.Root.ID), formatSize(r.Width, r.Height))
			printKeyValue(out, "viewport", fmt.Sprintf("%dx%d", r.Viewport.Width, r.Viewport.Height))
			printKeyValue(out, "mode", r.Mode)
			printStats(out, r.Nodes, "", res.CacheHit)
			if output != "" {
				printFile(out, output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON report instead of a summary")

	return cmd
}
