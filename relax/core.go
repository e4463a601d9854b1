package relax

import (
	"container/heap"

	"github.com/sasplan/fdplanner/task"
)

// Aggregation selects how a unary operator's precondition costs combine
// into its effect's tentative cost: max (h_max) or sum (h_add), both
// saturating at MaxCostValue.
type Aggregation uint8

const (
	AggregateMax Aggregation = iota
	AggregateAdd
)

// propItem is a min-heap entry, directly modeled on dijkstra.go's
// nodeItem/nodePQ: a proposition id and its tentative cost, with the same
// lazy-decrease-key discipline (push duplicates, ignore stale pops).
type propItem struct {
	prop int32
	cost int64
}

type propPQ []*propItem

func (pq propPQ) Len() int            { return len(pq) }
func (pq propPQ) Less(i, j int) bool  { return pq[i].cost < pq[j].cost }
func (pq propPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *propPQ) Push(x interface{}) { *pq = append(*pq, x.(*propItem)) }
func (pq *propPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Result is the outcome of one relaxation pass from a given state.
type Result struct {
	// PropCost[p] is the relaxed cost to first reach proposition p;
	// MaxCostValue means unreached (dead end under this relaxation).
	PropCost []int64

	// ReachedBy[p] is the index into Model.Ops of the unary operator whose
	// firing first achieved proposition p, or -1 if p held in the initial
	// relaxed state (a fact of the source values) or is unreached.
	ReachedBy []int32
}

// run executes the shared Dijkstra-style relaxation pass:
// every fact of `values` starts at cost 0; unary operators fire once every
// precondition proposition has been reached, contributing their effect at
// agg(base cost, precondition costs).
func run(m *Model, values []int32, agg Aggregation) *Result {
	res := &Result{
		PropCost:  make([]int64, m.NumProps()),
		ReachedBy: make([]int32, m.NumProps()),
	}
	for p := range res.PropCost {
		res.PropCost[p] = MaxCostValue
		res.ReachedBy[p] = -1
	}

	unsat := make([]int32, len(m.Ops))
	// tentative[op] accumulates the running aggregate for AggregateAdd;
	// for AggregateMax we recompute the max lazily by tracking it directly.
	tentative := make([]int64, len(m.Ops))
	for i, uop := range m.Ops {
		unsat[i] = int32(len(uop.Precondition))
		if agg == AggregateAdd {
			tentative[i] = int64(uop.Cost)
		}
	}

	pq := make(propPQ, 0, m.NumProps())
	heap.Init(&pq)

	for v, val := range values {
		f := task.Fact{Var: int32(v), Val: val}
		p := m.PropID(f)
		if res.PropCost[p] > 0 {
			res.PropCost[p] = 0
			heap.Push(&pq, &propItem{prop: p, cost: 0})
		}
	}

	// Unary operators with an empty precondition list never appear in any
	// PreconditionOf bucket, so they must be seeded here rather than
	// discovered during relaxation, whose worklist is otherwise driven
	// purely by PreconditionOf callbacks.
	for i, uop := range m.Ops {
		if len(uop.Precondition) != 0 {
			continue
		}
		ep := m.PropID(uop.Effect)
		effCost := int64(uop.Cost)
		if effCost < res.PropCost[ep] {
			res.PropCost[ep] = effCost
			res.ReachedBy[ep] = int32(i)
			heap.Push(&pq, &propItem{prop: ep, cost: effCost})
		}
	}

	closed := make([]bool, m.NumProps())
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*propItem)
		p := item.prop
		if closed[p] {
			continue
		}
		if item.cost > res.PropCost[p] {
			continue // stale lazy-decrease-key entry
		}
		closed[p] = true
		c := res.PropCost[p]

		for _, opIdx := range m.PreconditionOf(p) {
			uop := m.Ops[opIdx]
			switch agg {
			case AggregateMax:
				if c > tentative[opIdx] {
					tentative[opIdx] = c
				}
			case AggregateAdd:
				tentative[opIdx] = clampCost(tentative[opIdx] + c)
			}
			unsat[opIdx]--
			if unsat[opIdx] == 0 {
				var effCost int64
				if agg == AggregateMax {
					effCost = clampCost(tentative[opIdx] + int64(uop.Cost))
				} else {
					effCost = tentative[opIdx]
				}
				ep := m.PropID(uop.Effect)
				if effCost < res.PropCost[ep] {
					res.PropCost[ep] = effCost
					res.ReachedBy[ep] = int32(opIdx)
					heap.Push(&pq, &propItem{prop: ep, cost: effCost})
				}
			}
		}
	}

	return res
}
