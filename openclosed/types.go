// Package openclosed implements the open/closed-list primitives shared by
// every search engine: a priority-bucketed open list and a closed map from
// interned state to the edge that first reached it.
//
// Priorities here are small non-negative heuristic values, never the
// unbounded real-valued keys a general best-first search would need, so the
// open list is a vector of FIFO buckets indexed directly by priority rather
// than the binary heap used elsewhere in this codebase (pdb.Build's
// backward Dijkstra, mas's distance passes) for unbounded integer costs.
// Push/Pop are O(1) amortized; the heap's O(log n) decrease-key has no
// equivalent need here since entries are never re-prioritized in place.
package openclosed

import "github.com/sasplan/fdplanner/task"

// NoOperator marks a closed entry as the initial-state sentinel: the state
// was not reached by applying any operator.
const NoOperator int32 = -1

// Edge is a reaching edge: the predecessor state and the operator applied
// to it. Used both as an open-list entry (the transition still needs to be
// realized — the child state is computed and interned only when the entry
// is popped, so successors of states that are never expanded are never
// built) and as a closed-list value (the edge that first reached a state).
type Edge struct {
	Predecessor task.StateID
	Operator    int32
}
