package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/cliconfig"
	"github.com/sasplan/fdplanner/debugviz"
	"github.com/sasplan/fdplanner/mas"
	"github.com/sasplan/fdplanner/planio"
	"github.com/sasplan/fdplanner/relax"
	"github.com/sasplan/fdplanner/scheduler"
	"github.com/sasplan/fdplanner/search"
	"github.com/sasplan/fdplanner/succgen"
	"github.com/sasplan/fdplanner/task"
)

// iterativeMemLimitMB bounds IterativeGoalSearch's combined closed-list
// size when no collection-size-derived figure applies to it (it has no
// CLI-facing memory flag of its own; merge-and-shrink's collection_max_size
// bounds a different kind of memory entirely).
const iterativeMemLimitMB = 512

// runPlan reads a task from stdin, builds and runs the selector-configured
// engine, and writes its plan. It reports solved so rootCmd's RunE can
// choose the exit code that main (the only place in the program that calls
// os.Exit) uses; a non-nil error always means a fatal config/parse failure.
func runPlan(selector string) (bool, error) {
	tm, err := planio.ReadTask(os.Stdin)
	if err != nil {
		return false, fmt.Errorf("reading task: %w", err)
	}

	cfg, err := cliconfig.ParseConfiguration(selector)
	if err != nil {
		return false, fmt.Errorf("parsing selector %q: %w", selector, err)
	}

	cg := causalgraph.Build(tm)
	dtgs := causalgraph.BuildAll(tm)

	if dumpCausalGraph {
		fmt.Fprint(os.Stderr, debugviz.CausalGraph(cg, tm))
	}
	if dumpDTGVar >= 0 {
		if int(dumpDTGVar) >= len(dtgs) {
			return false, fmt.Errorf("--dump-dtg %d: task has %d variables", dumpDTGVar, len(dtgs))
		}
		fmt.Fprint(os.Stderr, debugviz.DTG(dtgs[dumpDTGVar], tm))
	}

	if cfg.Heuristic == "merge_and_shrink" {
		if massDeadEndCheck(tm, cg, cfg) {
			log.Timed().Infow("merge-and-shrink abstraction proves the task unsolvable")
			return false, nil
		}
	}

	engine := buildEngine(cfg, tm, dtgs)
	portfolio := scheduler.NewPortfolio(log, scheduler.Slot{
		Name:   selector,
		Engine: engine,
		Budget: engineBudget,
	})
	result := portfolio.Run()

	if !result.Solved {
		log.Timed().Infow("no plan found", "selector", selector)
		return false, nil
	}

	planOut, closePlanOut, err := planDestination()
	if err != nil {
		return false, err
	}
	writeErr := planio.WritePlan(planOut, tm, result.Plan)
	closePlanOut()
	if writeErr != nil {
		return false, fmt.Errorf("writing plan: %w", writeErr)
	}

	cost := planio.PlanCost(tm, result.Plan)
	log.Timed().Infow("plan found",
		"length", len(result.Plan),
		"cost", cost,
		"expanded", result.Expanded,
		"generated", result.Generated)
	return true, nil
}

// planDestination opens --plan-file, or falls back to stdout when it's
// unset; the returned close func is a no-op for stdout.
func planDestination() (io.Writer, func(), error) {
	if planFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(planFile)
	if err != nil {
		return nil, nil, fmt.Errorf("opening plan file %q: %w", planFile, err)
	}
	return f, func() { _ = f.Close() }, nil
}

// massDeadEndCheck builds a single linear merge-and-shrink abstraction
// over tm using the selector's configured shrink strategy and the variable
// order its merge strategy resolves to, and reports whether the
// abstraction alone already proves the task unsolvable — an early exit
// that costs one abstraction build instead of a full search.
func massDeadEndCheck(tm *task.TaskModel, cg *causalgraph.Graph, cfg *cliconfig.Config) bool {
	order := variableOrder(tm, cg, cfg.Options.Merge)
	abstraction := mas.Build(tm, mas.Options{
		VarOrder:     order,
		Strategy:     cfg.Options.Shrink,
		MaxStates:    cfg.Options.MaxStates,
		ReduceLabels: true,
	})
	if abstraction == nil {
		return false
	}
	return mas.DeclaresUnsolvable(abstraction)
}

// buildEngine constructs the scheduler.Engine named by cfg.Engine. Engines
// don't currently accept a pluggable heuristic: best_first always runs
// h_ff, and ehc/iterative derive their own goal-distance guidance
// internally, so cfg.Heuristic beyond the "merge_and_shrink" dead-end
// check above has no further consumer here.
func buildEngine(cfg *cliconfig.Config, tm *task.TaskModel, dtgs []*causalgraph.DTG) scheduler.Engine {
	gen := succgen.Build(tm)
	switch cfg.Engine {
	case cliconfig.EngineEnforcedHillClimbing:
		return search.NewEnforcedHillClimbing(tm, gen, dtgs)
	case cliconfig.EngineIterative:
		return search.NewIterativeGoalSearch(tm, gen, iterativeMemLimitMB)
	default: // cliconfig.EngineBestFirst
		return search.NewBestFirstSearch(tm, gen, dtgs, relax.DefaultOptions())
	}
}
