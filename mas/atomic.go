package mas

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/sasplan/fdplanner/task"
)

// BuildAtomic constructs the atomic abstraction for variable v: one state
// per domain value, arcs exactly from operators that write v (a free
// precondition yields one arc per source value other than the effect
// value, the same "enumerate a hop per possible source" rule used
// elsewhere whenever a precondition is left unconstrained).
func BuildAtomic(tm *task.TaskModel, v int32) *Abstraction {
	domainSize := tm.Variables[v].DomainSize

	a := &Abstraction{
		Vars:        []int32{v},
		NumStates:   int64(domainSize),
		Transitions: make(map[int32][]Transition),
		LabelCost:   make(map[int32]int64),
		Init:        tm.InitialValues[v],
		Goal:        roaring.New(),
		atomicVar:   v,
	}

	for _, g := range tm.Goal {
		if g.Var == v {
			a.Goal.Add(uint32(g.Val))
		}
	}
	if a.Goal.IsEmpty() {
		// v is not constrained by the goal: every value is vacuously a goal
		// state for this abstraction (it contributes no information until
		// merged with a variable the goal DOES constrain).
		for val := int32(0); val < domainSize; val++ {
			a.Goal.Add(uint32(val))
		}
	}

	for opIdx := range tm.Operators {
		op := &tm.Operators[opIdx]
		for _, pp := range op.PrePosts {
			if pp.Var != v {
				continue
			}
			label := int32(opIdx)
			a.LabelCost[label] = int64(op.Cost)

			if pp.Pre == pp.Post {
				// Prevail condition: op doesn't write v, but its
				// applicability still depends on v holding pp.Pre. Recorded
				// as a self-loop so that, once this abstraction is merged
				// with the one that DOES give op a real effect, the product
				// rule naturally gates that effect on v's value — an
				// operator with no PrePost for v at all (the general
				// "irrelevant to this factor" case) gets no entry here and
				// composes via identity instead.
				if pp.Pre != task.NoPreconditionValue {
					a.Transitions[label] = append(a.Transitions[label], Transition{From: pp.Pre, To: pp.Pre})
				}
				continue
			}

			if pp.Pre == task.NoPreconditionValue {
				for src := int32(0); src < domainSize; src++ {
					if src == pp.Post {
						continue
					}
					a.Transitions[label] = append(a.Transitions[label], Transition{From: src, To: pp.Post})
				}
			} else {
				a.Transitions[label] = append(a.Transitions[label], Transition{From: pp.Pre, To: pp.Post})
			}
		}
	}

	computeDistances(a)
	return a
}
