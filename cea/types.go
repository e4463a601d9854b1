// Package cea implements the context-enhanced additive / causal-graph
// heuristic: per-variable local Dijkstra problems over each variable's DTG,
// conditional on the current global state, with suspension on
// cross-variable conditions and a shared global priority heap.
//
// Older ports of this heuristic thread a process-wide back-pointer between
// the local-problem expansion loop and the suspended-transition bookkeeping.
// Here that state lives on an explicit *Context passed to every step,
// never a package global.
package cea

import "github.com/sasplan/fdplanner/task"

// goalVar is the pseudo-variable index reserved for the dedicated "goal
// problem": a two-node local problem (source=0, sink=1) whose single
// transition's conditions are the task's goal facts.
const goalVar int32 = -1

// transition is one DTG arc (or, for the goal problem, the single
// source->sink hop), modeled so that BOTH its own source-value reachability
// and its cross-variable conditions are uniform "dependencies": unreached
// counts every dependency (len(conditions) + 1 for the implicit "from-value
// reached" dependency), and extra accumulates each dependency's resolved
// cost as it becomes known, via Context.notifyWaiters.
type transition struct {
	ownerVar int32 // variable whose local problem owns this transition (or goalVar)
	fromVal  int32
	toVal    int32
	opID     int32 // task.Operator index, or -1 for the goal pseudo-transition
	baseCost int32

	conditions []task.Fact // cross-variable conditions (local parents)

	unreached int32
	extra     int64
}

// localNode is one value of one variable's local problem: cost, expanded
// flag, the transition that achieved it, and a waiting-list. Outgoing
// transitions are represented implicitly by each transition's membership
// in its dependencies' waiting lists rather than stored on the source node,
// since a transition's own from-value is itself just one more dependency.
type localNode struct {
	cost      int64
	expanded  bool
	reachedBy *transition
	waitingOn []*transition
}

// heapEntry is a shared-heap entry, modeled directly on relax's propItem /
// dijkstra.go's nodeItem: lazy-decrease-key, duplicates pushed and stale
// entries ignored on pop.
type heapEntry struct {
	variable int32
	value    int32
	cost     int64
}

type heapPQ []*heapEntry

func (pq heapPQ) Len() int            { return len(pq) }
func (pq heapPQ) Less(i, j int) bool  { return pq[i].cost < pq[j].cost }
func (pq heapPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *heapPQ) Push(x interface{}) { *pq = append(*pq, x.(*heapEntry)) }
func (pq *heapPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
