package mas

import "github.com/RoaringBitmap/roaring/v2"

// MaxCostValue is the dead-end sentinel for both g and h distance vectors,
// the same saturating-infinity convention relax, cea, and pdb all use.
const MaxCostValue int64 = 100_000_000

// Transition is one abstract (from, to) arc under some label.
type Transition struct {
	From, To int32
}

// Abstraction is a transition system over its own abstract state space:
// per-label transition lists, distance-from-initial (G) and
// distance-to-goal (H) vectors, a goal-state bitset, the initial state
// index, and a way to map a concrete state's variable values down into
// this abstraction's state space.
//
// A freshly built atomic abstraction maps state directly via one variable's
// value; a merged abstraction instead looks its two factors up and
// combines their indices, then remaps the result through any shrink
// quotient applied since — this is what lets Lookup stay cheap even after
// many merges without ever materializing a flat table over raw variable
// domains (which would blow up combinatorially before any shrinking).
type Abstraction struct {
	Vars []int32 // sorted global variable indices this abstraction represents

	NumStates int64

	// Transitions is keyed by operator id. When Merge applies ReduceLabels,
	// every operator of one class is still keyed separately and shares the
	// class's composed transition list.
	Transitions map[int32][]Transition
	LabelCost   map[int32]int64

	Init int32
	Goal *roaring.Bitmap

	G []int64 // distance from Init, indexed by state
	H []int64 // distance to a goal state, indexed by state

	// atomic lookup (leaf abstraction)
	atomicVar int32 // -1 if this is a merged (non-leaf) abstraction

	// merged lookup (internal node)
	left, right *Abstraction

	// quotient, if non-nil, remaps a composite/atomic index computed above
	// into the current (possibly shrunk) state space; len(quotient) ==
	// the pre-shrink state count.
	quotient []int32
}

// Lookup maps a full concrete state down to this abstraction's current
// state index.
func (a *Abstraction) Lookup(values []int32) int32 {
	var idx int32
	if a.atomicVar >= 0 {
		idx = values[a.atomicVar]
	} else {
		li := a.left.Lookup(values)
		ri := a.right.Lookup(values)
		idx = li*int32(a.right.NumStates) + ri
	}
	if a.quotient != nil {
		idx = a.quotient[idx]
	}
	return idx
}

// HeuristicValue returns this abstraction's goal-distance estimate for a
// concrete state, or MaxCostValue if the state maps to an abstract state
// not known to reach the goal (or whose init-reachability was pruned).
func (a *Abstraction) HeuristicValue(values []int32) int64 {
	idx := a.Lookup(values)
	if int(idx) >= len(a.H) {
		return MaxCostValue
	}
	return a.H[idx]
}
