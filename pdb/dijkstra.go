package pdb

import (
	"container/heap"

	"github.com/sasplan/fdplanner/task"
)

// stateItem is a min-heap entry, the same lazy-decrease-key shape used
// throughout this codebase's other Dijkstra-style passes.
type stateItem struct {
	hash int64
	cost int64
}

type statePQ []*stateItem

func (pq statePQ) Len() int            { return len(pq) }
func (pq statePQ) Less(i, j int) bool  { return pq[i].cost < pq[j].cost }
func (pq statePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *statePQ) Push(x interface{}) { *pq = append(*pq, x.(*stateItem)) }
func (pq *statePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// backwardDijkstra runs Dijkstra from every abstract goal state, using mt
// to look up the regressed operators applicable at each popped state and
// AbstractOperator.HashDelta to reach predecessors by integer addition
// alone, with no per-step state decoding beyond the MatchTree query itself.
func (p *PDB) backwardDijkstra(tm *task.TaskModel, mt *matchTree) []int64 {
	dist := make([]int64, p.numStates)
	for i := range dist {
		dist[i] = MaxCostValue
	}

	pq := make(statePQ, 0, 64)
	heap.Init(&pq)
	for _, h := range p.goalHashes(tm) {
		if dist[h] > 0 {
			dist[h] = 0
			heap.Push(&pq, &stateItem{hash: h, cost: 0})
		}
	}

	closed := make([]bool, p.numStates)
	var matched []int32
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*stateItem)
		h := item.hash
		if closed[h] {
			continue
		}
		if item.cost > dist[h] {
			continue
		}
		closed[h] = true

		matched = matched[:0]
		mt.query(p.Decode(h), &matched)
		for _, opIdx := range matched {
			op := p.ops[opIdx]
			predHash := h + op.HashDelta
			cand := item.cost + int64(op.Cost)
			if cand < dist[predHash] {
				dist[predHash] = cand
				heap.Push(&pq, &stateItem{hash: predHash, cost: cand})
			}
		}
	}
	return dist
}

// goalHashes enumerates every abstract state consistent with tm's goal:
// pattern positions named by a goal fact are fixed to that value, every
// other pattern position ranges freely over its full domain.
func (p *PDB) goalHashes(tm *task.TaskModel) []int64 {
	fixed := make(map[int32]int32, len(tm.Goal))
	for _, g := range tm.Goal {
		if li, ok := p.local[g.Var]; ok {
			fixed[li] = g.Val
		}
	}

	var hashes []int64
	values := make([]int32, len(p.Pattern))
	var rec func(i int)
	rec = func(i int) {
		if i == len(p.Pattern) {
			var h int64
			for j := range p.Pattern {
				h += int64(values[j]) * p.coeff[j]
			}
			hashes = append(hashes, h)
			return
		}
		if v, ok := fixed[int32(i)]; ok {
			values[i] = v
			rec(i + 1)
			return
		}
		for v := int32(0); v < p.domain[i]; v++ {
			values[i] = v
			rec(i + 1)
		}
	}
	rec(0)
	return hashes
}
