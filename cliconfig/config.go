package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/sasplan/fdplanner/mas"
)

// EngineKind names one of the search engines the scheduler can run,
// selected by a selector expression's outermost call name.
type EngineKind int

const (
	EngineUnknown EngineKind = iota
	EngineBestFirst
	EngineEnforcedHillClimbing
	EngineIterative
)

var engineNames = map[string]EngineKind{
	"best_first": EngineBestFirst,
	"ehc":        EngineEnforcedHillClimbing,
	"iterative":  EngineIterative,
}

// MergeStrategy selects how merge-and-shrink orders variables for
// folding into the growing product abstraction. Unlike ShrinkStrategy,
// mas itself takes a caller-supplied VarOrder directly and has no
// strategy enum of its own — this type and its resolution to a concrete
// order are cliconfig's (and, from it, cmd/fdplanner's) responsibility.
type MergeStrategy int

const (
	// MergeLinearCG orders variables by a causal-graph-informed
	// traversal (goal variables and their ancestors first).
	MergeLinearCG MergeStrategy = iota
	// MergeLinearReverseLevel folds variables in the reverse of their
	// declared order.
	MergeLinearReverseLevel
	// MergeLinearGiven uses exactly the declared variable order.
	MergeLinearGiven
)

var mergeStrategyNames = map[string]MergeStrategy{
	"linear_cg":            MergeLinearCG,
	"linear_reverse_level": MergeLinearReverseLevel,
	"linear_given":         MergeLinearGiven,
}

var shrinkStrategyNames = map[string]mas.ShrinkStrategy{
	"fh_bucket":    mas.ShrinkFHBucket,
	"bisimulation": mas.ShrinkBisimulation,
	"dfp":          mas.ShrinkDFP,
}

// Options holds every numeric/enum knob named in the tool's documented
// CLI surface, each defaulted the way DefaultOptions sets it.
type Options struct {
	MaxStates                   int64
	CollectionMaxSize           int64
	HillClimbingSamples         int64
	HillClimbingImprovementFloor float64
	Shrink                       mas.ShrinkStrategy
	Merge                        MergeStrategy
}

// DefaultOptions returns the documented defaults: generous but bounded
// abstraction and collection sizes, a thousand-sample hill-climbing
// budget with a break-even improvement floor, bisimulation shrinking
// (exact, at some extra cost) and causal-graph-informed merging.
func DefaultOptions() Options {
	return Options{
		MaxStates:                    50000,
		CollectionMaxSize:            1_000_000,
		HillClimbingSamples:          1000,
		HillClimbingImprovementFloor: 1,
		Shrink:                       mas.ShrinkBisimulation,
		Merge:                        MergeLinearCG,
	}
}

// Config is the fully resolved result of parsing and validating one
// selector expression: which engine to run, the heuristic term it named
// (interpreted by the scheduler/search wiring, not by cliconfig itself),
// and the numeric/enum options that apply to it.
type Config struct {
	Engine    EngineKind
	Heuristic string
	Options   Options
}

// ParseConfiguration parses selector and resolves it into a Config,
// applying DefaultOptions as a base and overriding every key=value
// argument found on the heuristic term. Any malformed syntax, unknown
// engine/heuristic option name, unknown enum value, or out-of-range
// numeric value is a fatal configuration error (per spec.md §7),
// returned as one of this package's sentinel errors.
func ParseConfiguration(selector string) (*Config, error) {
	term, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	kind, ok := engineNames[term.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, term.Name)
	}
	cfg := &Config{Engine: kind, Options: DefaultOptions()}
	if len(term.Args) == 0 {
		return cfg, nil
	}

	heuristicTerm := term.Args[0].Value
	if heuristicTerm == nil {
		return nil, fmt.Errorf("%w: %q takes a heuristic argument", ErrMalformedSelector, term.Name)
	}
	cfg.Heuristic = heuristicTerm.Name

	opts, err := resolveOptions(cfg.Options, heuristicTerm)
	if err != nil {
		return nil, err
	}
	cfg.Options = opts
	return cfg, nil
}

func resolveOptions(base Options, term *Term) (Options, error) {
	for _, arg := range term.Args {
		if arg.Key == "" {
			continue // a bare positional argument carries no option to resolve
		}
		if arg.Value == nil || !arg.Value.IsLeaf() {
			return Options{}, fmt.Errorf("%w: %q must be a plain value", ErrInvalidOptionValue, arg.Key)
		}
		raw := arg.Value.Name
		switch arg.Key {
		case "max_states":
			v, err := parsePositiveInt(arg.Key, raw)
			if err != nil {
				return Options{}, err
			}
			base.MaxStates = v
		case "collection_max_size":
			v, err := parsePositiveInt(arg.Key, raw)
			if err != nil {
				return Options{}, err
			}
			base.CollectionMaxSize = v
		case "hill_climbing_samples":
			v, err := parsePositiveInt(arg.Key, raw)
			if err != nil {
				return Options{}, err
			}
			base.HillClimbingSamples = v
		case "hill_climbing_improvement_floor":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v <= 0 {
				return Options{}, fmt.Errorf("%w: hill_climbing_improvement_floor=%q", ErrInvalidOptionValue, raw)
			}
			base.HillClimbingImprovementFloor = v
		case "shrink_strategy":
			s, ok := shrinkStrategyNames[raw]
			if !ok {
				return Options{}, fmt.Errorf("%w: %q", ErrUnknownShrinkStrategy, raw)
			}
			base.Shrink = s
		case "merge_strategy":
			m, ok := mergeStrategyNames[raw]
			if !ok {
				return Options{}, fmt.Errorf("%w: %q", ErrUnknownMergeStrategy, raw)
			}
			base.Merge = m
		default:
			return Options{}, fmt.Errorf("%w: %q", ErrUnknownOption, arg.Key)
		}
	}
	return base, nil
}

func parsePositiveInt(key, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidOptionValue, key, raw)
	}
	return v, nil
}
