package causalgraph

import (
	"sort"

	"github.com/sasplan/fdplanner/task"
)

// Graph is the causal graph over variables: arc u -> v iff some operator
// has u in its condition (precondition or effect-condition) and writes v
//. The "legacy" variant used by the CG/CEA heuristic considers
// only precondition -> effect arcs, never effect <-> effect arcs;
// IsLegacyArc reports which arcs are legacy arcs.
type Graph struct {
	numVars int
	// adjacency[u] is the sorted, deduplicated list of v such that u -> v.
	adjacency [][]int32
	// legacy[u][v] is true iff the u->v arc was induced by a
	// precondition(u) + effect(v) pairing on the same operator.
	legacy map[[2]int32]bool
}

// NumVars returns the number of variables this graph is defined over.
func (cg *Graph) NumVars() int { return cg.numVars }

// Successors returns the sorted list of variables v with an arc u -> v.
func (cg *Graph) Successors(u int32) []int32 { return cg.adjacency[u] }

// IsLegacyArc reports whether u -> v is a legacy (precondition-to-effect)
// arc, as opposed to one only induced by an effect-condition.
func (cg *Graph) IsLegacyArc(u, v int32) bool { return cg.legacy[[2]int32{u, v}] }

// Build constructs the full causal graph and its legacy-arc classification
// from tm's operators and axioms.
func Build(tm *task.TaskModel) *Graph {
	cg := &Graph{
		numVars: len(tm.Variables),
		legacy:  make(map[[2]int32]bool),
	}
	adjSet := make([]map[int32]bool, cg.numVars)
	for i := range adjSet {
		adjSet[i] = make(map[int32]bool)
	}

	addArc := func(u, v int32, isLegacy bool) {
		if u == v {
			return
		}
		adjSet[u][v] = true
		if isLegacy {
			cg.legacy[[2]int32{u, v}] = true
		}
	}

	for _, op := range tm.Operators {
		effectVars := make([]int32, 0, len(op.PrePosts))
		for _, pp := range op.PrePosts {
			if pp.Pre != pp.Post {
				effectVars = append(effectVars, pp.Var)
			}
		}
		for _, pp := range op.PrePosts {
			// Precondition (Pre defined) -> every effect variable: legacy arc.
			if pp.Pre != task.NoPreconditionValue {
				for _, ev := range effectVars {
					addArc(pp.Var, ev, true)
				}
			}
			// Effect-condition facts -> this effect's variable: non-legacy.
			for _, c := range pp.Cond {
				addArc(c.Var, pp.Var, false)
			}
		}
	}
	for _, ax := range tm.Axioms {
		pp := ax.PrePosts[0]
		if pp.Pre != task.NoPreconditionValue {
			addArc(pp.Var, pp.Var, true) // no-op for self, kept for clarity
		}
		for _, c := range pp.Cond {
			addArc(c.Var, pp.Var, false)
		}
	}

	cg.adjacency = make([][]int32, cg.numVars)
	for u := range adjSet {
		list := make([]int32, 0, len(adjSet[u]))
		for v := range adjSet[u] {
			list = append(list, v)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		cg.adjacency[u] = list
	}
	return cg
}
