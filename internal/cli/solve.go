package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridaxis/pkg/errors"
	"github.com/matzehuels/gridaxis/pkg/pipeline"
	"github.com/matzehuels/gridaxis/pkg/problem"
)

// Output formats of solve and bounds.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputTOML  = "toml"
)

type solveOpts struct {
	sizes   []int
	output  string
	noCache bool
	refresh bool
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve <problem.toml|problem.json>",
		Short: "Lay out a problem at one or more sizes",
		Long: `Solve lays out every element of the problem for each requested total size.

Sizes come from --size, else from the problem's "sizes" field, else the
preferred size is used. Sizes outside [min, max] are clamped.`,
		Example: `  gridaxis solve columns.toml
  gridaxis solve columns.toml --size 320,640 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntSliceVarP(&opts.sizes, "size", "s", nil, "total sizes to solve for (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json, toml")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the solution cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached solutions")
	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, path string, opts solveOpts) error {
	if err := validateOutput(opts.output); err != nil {
		return err
	}
	p, err := problem.Load(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Solve(cmd.Context(), p, pipeline.Options{Sizes: opts.sizes, Refresh: opts.refresh})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.output {
	case outputJSON:
		return problem.Encode(out, res, problem.FormatJSON)
	case outputTOML:
		return problem.Encode(out, res, problem.FormatTOML)
	}

	printInfo(out, "%s %s", StyleTitle.Render(p.Name), StyleDim.Render(fmt.Sprintf("%s · %d elements · cached %d/%d",
		res.Bounds.Strategy, res.Bounds.Elements, res.Stats.CacheHits, len(res.Solutions))))
	for _, sol := range res.Solutions {
		printSolution(out, sol)
	}
	if n := len(res.Solutions); n > 0 && len(res.Solutions[0].Relaxed) > 0 {
		printWarning(out, "%d range maximum(s) could not be met and were relaxed", len(res.Solutions[0].Relaxed))
	}
	return nil
}

func (c *CLI) boundsCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "bounds <problem.toml|problem.json>",
		Short: "Print the min, max and preferred size of a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			b, err := runner.Bounds(cmd.Context(), p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch output {
			case outputJSON:
				return problem.Encode(out, b, problem.FormatJSON)
			case outputTOML:
				return problem.Encode(out, b, problem.FormatTOML)
			}
			printBounds(out, b)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json, toml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solution cache")
	return cmd
}

func validateOutput(output string) error {
	switch output {
	case outputTable, outputJSON, outputTOML:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want %s)", output,
		strings.Join([]string{outputTable, outputJSON, outputTOML}, ", "))
}
