package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridaxis/pkg/errors"
	"github.com/matzehuels/gridaxis/pkg/problem"
	"github.com/matzehuels/gridaxis/pkg/render/dot"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		size   int
	)

	cmd := &cobra.Command{
		Use:   "graph <problem.toml|problem.json>",
		Short: "Draw the constraint graph of a problem",
		Long: `Graph draws elements as a chain and range constraints as dashed edges.

With --size the solved sizes are included and relaxed ranges are highlighted.
The output format follows the extension of --output (.dot or .svg); without
--output DOT source is printed.`,
		Example: `  gridaxis graph columns.toml
  gridaxis graph columns.toml --size 640 -o columns.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}

			var sol *problem.Solution
			if cmd.Flags().Changed("size") {
				if err := errors.ValidateSize(size); err != nil {
					return err
				}
				l, err := p.Build()
				if err != nil {
					return err
				}
				if sol, err = problem.Solve(l, size); err != nil {
					return err
				}
			}
			src := dot.ToDOT(p, sol)

			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), src)
				return err
			}
			return c.writeGraph(cmd, src, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot or .svg)")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "solve at this size and annotate the graph")
	return cmd
}

func (c *CLI) writeGraph(cmd *cobra.Command, src, path string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		data = []byte(src)
	case ".svg":
		prog := newProgress(c.Logger)
		spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rendering graph...")
		spin.Start()
		svg, err := dot.RenderSVG(cmd.Context(), src)
		spin.Stop()
		if err != nil {
			return err
		}
		prog.done("Rendered graph")
		data = svg
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph output %q (want .dot or .svg)", filepath.Base(path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess(cmd.OutOrStdout(), "Wrote graph")
	printFile(cmd.OutOrStdout(), path)
	return nil
}
