package pdb

import (
	"sort"

	"github.com/sasplan/fdplanner/task"
)

// effSpec is one effect on a pattern variable projected from a concrete
// operator: local pattern position, the predecessor value it requires
// (task.NoPreconditionValue if unconstrained), and the value it writes.
type effSpec struct {
	local int32
	pre   int32
	post  int32
}

// Build constructs the pattern database for pattern (a set of global
// variable indices; need not be pre-sorted). ∏ domain sizes over pattern
// must fit comfortably in memory — callers enforce any max_states policy
// before calling Build.
func Build(tm *task.TaskModel, pattern []int32) *PDB {
	sorted := append([]int32(nil), pattern...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	dedup := sorted[:0:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			dedup = append(dedup, v)
		}
	}

	p := &PDB{Pattern: dedup, local: make(map[int32]int32, len(dedup))}
	p.domain = make([]int32, len(dedup))
	p.coeff = make([]int64, len(dedup))
	running := int64(1)
	for i, gv := range dedup {
		p.local[gv] = int32(i)
		p.domain[i] = tm.Variables[gv].DomainSize
		p.coeff[i] = running
		running *= int64(p.domain[i])
	}
	p.numStates = running

	mt := newMatchTree(len(dedup))
	var opIdx int32
	for _, op := range tm.Operators {
		for _, abs := range p.projectOperator(op) {
			mt.insert(abs.RegressionTests, opIdx)
			p.storeAbstractOp(abs)
			opIdx++
		}
	}

	p.distance = p.backwardDijkstra(tm, mt)
	return p
}

func (p *PDB) storeAbstractOp(abs AbstractOperator) {
	p.ops = append(p.ops, abs)
}

// projectOperator returns every abstract operator op projects onto p's
// pattern: zero if op touches no pattern variable as an effect, one per
// combination of source values for effects whose precondition is free.
func (p *PDB) projectOperator(op task.Operator) []AbstractOperator {
	var effs []effSpec
	var prevail []task.Fact
	for _, pp := range op.PrePosts {
		li, ok := p.local[pp.Var]
		if !ok {
			continue
		}
		if pp.Pre == pp.Post {
			prevail = append(prevail, task.Fact{Var: li, Val: pp.Pre})
		} else {
			effs = append(effs, effSpec{local: li, pre: pp.Pre, post: pp.Post})
		}
	}
	if len(effs) == 0 {
		return nil
	}

	var out []AbstractOperator
	combo := make([]int32, len(effs))
	var rec func(i int)
	rec = func(i int) {
		if i == len(effs) {
			tests := append([]task.Fact(nil), prevail...)
			var delta int64
			for j, e := range effs {
				tests = append(tests, task.Fact{Var: e.local, Val: e.post})
				delta += int64(combo[j]-e.post) * p.coeff[e.local]
			}
			out = append(out, AbstractOperator{Cost: op.Cost, RegressionTests: tests, HashDelta: delta})
			return
		}
		e := effs[i]
		if e.pre != task.NoPreconditionValue {
			combo[i] = e.pre
			rec(i + 1)
			return
		}
		for v := int32(0); v < p.domain[e.local]; v++ {
			if v == e.post {
				continue
			}
			combo[i] = v
			rec(i + 1)
		}
	}
	rec(0)
	return out
}
