package mas

import (
	"container/heap"

	"github.com/RoaringBitmap/roaring/v2"
)

type distEdge struct {
	to   int32
	cost int64
}

type distItem struct {
	state int32
	cost  int64
}

type distPQ []distItem

func (q distPQ) Len() int            { return len(q) }
func (q distPQ) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q distPQ) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *distPQ) Push(x interface{}) { *q = append(*q, x.(distItem)) }
func (q *distPQ) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// computeDistances recomputes G (distance from Init) and H (distance to the
// nearest goal state) from scratch over a's current Transitions — always
// called after a merge or a shrink quotient changes the state space, never
// incrementally patched, so bisimulation-exactness never has to be argued
// for an update path.
func computeDistances(a *Abstraction) {
	n := a.NumStates
	fwd := make([][]distEdge, n)
	rev := make([][]distEdge, n)
	for label, ts := range a.Transitions {
		cost := a.LabelCost[label]
		for _, t := range ts {
			fwd[t.From] = append(fwd[t.From], distEdge{to: t.To, cost: cost})
			rev[t.To] = append(rev[t.To], distEdge{to: t.From, cost: cost})
		}
	}

	a.G = dijkstraFrom(fwd, n, []int32{a.Init})

	var goalSeeds []int32
	it := a.Goal.Iterator()
	for it.HasNext() {
		goalSeeds = append(goalSeeds, int32(it.Next()))
	}
	a.H = dijkstraFrom(rev, n, goalSeeds)
}

// dijkstraFrom runs a lazy-decrease-key multi-source Dijkstra over adj,
// returning the MaxCostValue-saturated distance from the nearest seed to
// every one of the n states.
func dijkstraFrom(adj [][]distEdge, n int64, seeds []int32) []int64 {
	dist := make([]int64, n)
	for i := range dist {
		dist[i] = MaxCostValue
	}

	pq := make(distPQ, 0, len(seeds))
	seeded := make(map[int32]bool, len(seeds))
	for _, s := range seeds {
		if seeded[s] {
			continue
		}
		seeded[s] = true
		dist[s] = 0
		pq = append(pq, distItem{state: s, cost: 0})
	}
	heap.Init(&pq)

	for pq.Len() > 0 {
		top := heap.Pop(&pq).(distItem)
		if top.cost > dist[top.state] {
			continue // stale pop
		}
		for _, e := range adj[top.state] {
			next := top.cost + e.cost
			if next < dist[e.to] {
				dist[e.to] = next
				heap.Push(&pq, distItem{state: e.to, cost: next})
			}
		}
	}
	return dist
}

// pruneUnreachableIrrelevant drops every state not reachable from Init and
// every state that cannot reach a goal state — they carry no information
// and would otherwise just inflate NumStates.
//
// This does NOT go through applyQuotient: that function's merge semantics
// union the goal membership and transitions of every state mapped to the
// same group, which is correct when the group is a genuine equivalence
// class (every shrink strategy) but wrong here, where the dropped states
// share nothing in common except being unwanted. Routing them through
// applyQuotient would risk a dropped state that happened to be a goal
// fact leaking its goal membership onto whichever live group absorbed it,
// or a dropped state's dangling transition reappearing as a spurious edge
// on a live state. Instead every dropped state maps to one dedicated dead
// index appended past the live ones; every transition touching it is
// discarded rather than remapped, so it ends up fully isolated and
// computeDistances naturally leaves it at MaxCostValue on both sides
// without any special-casing.
func pruneUnreachableIrrelevant(a *Abstraction) {
	groupOf := make([]int32, a.NumStates)
	var numLive int32
	for s := int64(0); s < a.NumStates; s++ {
		// Init is always kept even if H[Init] is infinite: dropping it would
		// silently discard the signal that the whole task is unsolvable
		// from here, which DeclaresUnsolvable depends on being able to see.
		if s != int64(a.Init) && (a.G[s] >= MaxCostValue || a.H[s] >= MaxCostValue) {
			groupOf[s] = -1
			continue
		}
		groupOf[s] = numLive
		numLive++
	}
	if int64(numLive) == a.NumStates {
		return // nothing to prune
	}
	deadIdx := numLive
	for s := range groupOf {
		if groupOf[s] == -1 {
			groupOf[s] = deadIdx
		}
	}
	numStates := int64(deadIdx) + 1

	if a.quotient == nil {
		a.quotient = append([]int32(nil), groupOf...)
	} else {
		composed := make([]int32, len(a.quotient))
		for i, old := range a.quotient {
			composed[i] = groupOf[old]
		}
		a.quotient = composed
	}

	newTransitions := make(map[int32][]Transition, len(a.Transitions))
	for label, ts := range a.Transitions {
		seen := make(map[[2]int32]bool, len(ts))
		var out []Transition
		for _, t := range ts {
			from, to := groupOf[t.From], groupOf[t.To]
			if from == deadIdx || to == deadIdx {
				continue // dead states carry no transitions, in or out
			}
			key := [2]int32{from, to}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Transition{From: from, To: to})
		}
		if len(out) > 0 {
			newTransitions[label] = out
		}
	}
	a.Transitions = newTransitions

	newGoal := roaring.New()
	it := a.Goal.Iterator()
	for it.HasNext() {
		if g := groupOf[int32(it.Next())]; g != deadIdx {
			newGoal.Add(uint32(g))
		}
	}
	a.Goal = newGoal

	a.Init = groupOf[a.Init]
	a.NumStates = numStates

	computeDistances(a)
}
