package mas

import (
	"math/rand"

	"github.com/sasplan/fdplanner/task"
)

// Collection holds a set of abstractions and evaluates the max-over-
// abstractions heuristic: if any abstraction reports a state unreachable
// from the goal, that is itself proof the concrete state is a dead end
// (an abstraction is a relaxation — any concrete plan induces an abstract
// one), so MaxCostValue propagates through the max exactly as intended
// without any special-casing.
type Collection struct {
	Abstractions []*Abstraction
}

// NewCollection wraps a set of already-built abstractions.
func NewCollection(abs ...*Abstraction) *Collection {
	return &Collection{Abstractions: abs}
}

// Add appends an abstraction to the collection.
func (c *Collection) Add(a *Abstraction) {
	c.Abstractions = append(c.Abstractions, a)
}

// Evaluate returns the max goal-distance estimate over every abstraction.
func (c *Collection) Evaluate(values []int32) int64 {
	var best int64
	for _, a := range c.Abstractions {
		if v := a.HeuristicValue(values); v > best {
			best = v
		}
	}
	return best
}

// DeclaresUnsolvable reports whether a's initial state cannot reach any
// goal state — per spec, an abstraction whose init is unreachable-to-goal
// declares the whole concrete task unsolvable, not merely this branch of
// search, and callers should treat that as an immediate FAILED rather than
// just a high heuristic value.
func DeclaresUnsolvable(a *Abstraction) bool {
	return a.H[a.Init] >= MaxCostValue
}

// Options configures a single linear merge-and-shrink run.
type Options struct {
	VarOrder     []int32 // merge order: atomic abstractions are built and folded in this sequence
	Strategy     ShrinkStrategy
	MaxStates    int64 // per-abstraction size cap enforced after every atomic build and every merge
	ReduceLabels bool
	Rng          *rand.Rand // only consulted by ShrinkFHBucket's randomized bucket-merge order
}

// Build runs the classic linear merge-and-shrink pipeline: fold variables
// into a single growing abstraction one at a time in VarOrder, shrinking
// to MaxStates after every atomic build and every merge. Each factor is
// shrunk before it is merged, but the product of two factors is only
// shrunk after it is built, so it can hold up to MaxStates² states in the
// meantime. Returns the final abstraction, or nil if VarOrder is empty.
func Build(tm *task.TaskModel, opts Options) *Abstraction {
	if len(opts.VarOrder) == 0 {
		return nil
	}

	current := BuildAtomic(tm, opts.VarOrder[0])
	Shrink(current, opts.Strategy, opts.MaxStates, opts.Rng)

	for _, v := range opts.VarOrder[1:] {
		next := BuildAtomic(tm, v)
		Shrink(next, opts.Strategy, opts.MaxStates, opts.Rng)

		merged := Merge(tm, current, next, opts.ReduceLabels)
		Shrink(merged, opts.Strategy, opts.MaxStates, opts.Rng)
		current = merged

		if DeclaresUnsolvable(current) {
			return current
		}
	}
	return current
}
