// Package pdb builds a single pattern database: a compact abstract state
// space over a small subset of task variables, indexed by a MatchTree of
// regressed abstract operators, solved by backward Dijkstra from the
// abstract goal states.
package pdb

import "github.com/sasplan/fdplanner/task"

// MaxCostValue is the dead-end sentinel for abstract distances, shared in
// purpose with relax.MaxCostValue and cea.MaxCostValue.
const MaxCostValue int64 = 100_000_000

// AbstractOperator is one regressed operator over a pattern: RegressionTests
// is the union of its prevail conditions and effect post-values (both
// expressed as local pattern-index facts), the state a predecessor query
// must match for this operator to have produced it; HashDelta is added to
// an abstract state's hash to compute its predecessor's hash directly, with
// no per-step decoding.
type AbstractOperator struct {
	Cost            int32
	RegressionTests []task.Fact // task.Fact.Var is a LOCAL pattern index here
	HashDelta       int64
}

// PDB is one built pattern database.
type PDB struct {
	Pattern []int32 // sorted, deduplicated GLOBAL variable indices

	coeff  []int64 // coeff[i] = product of domain sizes of Pattern[0:i]
	domain []int32 // domain[i] = domain size of Pattern[i]
	local  map[int32]int32

	numStates int64
	distance  []int64          // distance[hash] = cost to any abstract goal state
	ops       []AbstractOperator // parallel to the operator indices the matchTree stores
}

// NumStates returns the number of abstract states (∏ domain sizes).
func (p *PDB) NumStates() int64 { return p.numStates }

// Hash projects values (indexed by GLOBAL variable) onto the pattern and
// returns its mixed-radix abstract-state index.
func (p *PDB) Hash(values []int32) int64 {
	var h int64
	for i, gv := range p.Pattern {
		h += int64(values[gv]) * p.coeff[i]
	}
	return h
}

// Decode expands an abstract-state hash back into per-pattern-position
// values (indexed by local pattern position, not global variable index).
func (p *PDB) Decode(hash int64) []int32 {
	out := make([]int32, len(p.Pattern))
	for i := range p.Pattern {
		out[i] = int32((hash / p.coeff[i]) % int64(p.domain[i]))
	}
	return out
}

// Lookup returns the abstract distance for the state's projection onto
// this pattern: MaxCostValue if that abstract state cannot reach any
// abstract goal state (a dead end under this pattern).
func (p *PDB) Lookup(values []int32) int64 {
	return p.distance[p.Hash(values)]
}
