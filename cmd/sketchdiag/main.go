// Command sketchdiag is a developer diagnostic for the sketch solver: it
// loads a scenario file (points, shapes, constraints, optional solver
// options) and prints the resulting Stats and any residual conflicts. It
// is not a wire protocol or a persistence format — just a terminal
// harness over the sketch/lm/constraint packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sketchsolver/core/sketch"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sketchdiag",
		Short: "Diagnostic CLI for the sketch constraint solver",
	}
	cmd.AddCommand(newSolveCommand())
	return cmd
}

func newSolveCommand() *cobra.Command {
	var tol float64
	var maxConflicts int

	cmd := &cobra.Command{
		Use:           "solve <scenario.yaml>",
		Short:         "Solve a scenario file and report its outcome",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			s, opts, err := loadScenario(doc)
			if err != nil {
				return err
			}

			stats, err := s.Solve(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status=%s iters=%d cost=%.6e residual_norm=%.6e\n",
				stats.Status, stats.Iters, stats.Cost, sketch.ResidualNorm(stats))

			conflicts, err := s.Conflicts(tol, maxConflicts)
			if err != nil {
				return err
			}
			if len(conflicts) == 0 {
				fmt.Fprintln(out, "no conflicts")
				return nil
			}
			fmt.Fprintln(out, "conflicts:")
			for _, c := range conflicts {
				fmt.Fprintf(out, "  #%d %s residual_norm=%.6e\n", c.ConstraintIndex, c.Kind, c.ResidualNorm)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&tol, "tol", 1e-6, "residual-norm tolerance for conflict reporting")
	cmd.Flags().IntVar(&maxConflicts, "max-conflicts", 10, "maximum conflicts to report")
	return cmd
}
