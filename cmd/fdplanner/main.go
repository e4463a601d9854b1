// Package main implements fdplanner, the command-line entry point that
// wires a SAS+ task stream through the selector-configured engine and
// reports a plan. Entry point and global flag state live here; the
// planning pipeline itself is in run.go, variable-order resolution for
// merge-and-shrink in varorder.go.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sasplan/fdplanner/planlog"
)

var (
	verbose         bool
	planFile        string
	engineBudget    time.Duration
	dumpCausalGraph bool
	dumpDTGVar      int32

	log *planlog.Logger

	// exitCode is set by RunE and consumed by main after Execute returns,
	// so PersistentPostRun's log flush always runs first — os.Exit itself
	// is called exactly once, from main.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "fdplanner [selector]",
	Short: "Solve a SAS+ planning task read from stdin",
	Long: `fdplanner reads a SAS+ task from stdin, builds the search engine named
by selector (e.g. "best_first(ff)" or "ehc(merge_and_shrink(max_states=200))"),
and writes the resulting plan in sas_plan format.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			log, err = planlog.NewDevelopment(planlog.WithVerbose(true))
		} else {
			log, err = planlog.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		solved, err := runPlan(args[0])
		if err != nil {
			return err
		}
		if !solved {
			exitCode = 1
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().StringVar(&planFile, "plan-file", "", "write the plan here instead of stdout")
	rootCmd.PersistentFlags().DurationVar(&engineBudget, "budget", 10*time.Minute, "wall-clock budget for the configured engine")
	rootCmd.PersistentFlags().BoolVar(&dumpCausalGraph, "dump-causal-graph", false, "write the task's causal graph as Graphviz DOT to stderr, then continue the run")
	rootCmd.PersistentFlags().Int32Var(&dumpDTGVar, "dump-dtg", -1, "write the named variable's domain-transition graph as Graphviz DOT to stderr, then continue the run")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
