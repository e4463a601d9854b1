package mas

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/sasplan/fdplanner/task"
)

// Merge computes the synchronized product a1 ⊗ a2: the new state set is
// the Cartesian product (state (s1, s2) numbered s1*a2.NumStates + s2),
// initial and goal states are products, and for each operator relevant to
// at least one factor the composed transition set follows the product
// rule — relevant to both: the product of their transitions; relevant to
// only one: that factor's transitions paired with identity on the other.
// After composing, distances are recomputed and unreachable/irrelevant
// states are pruned.
//
// When reduceLabels is true and the two factors' variable sets are
// disjoint, operators are first grouped into ReduceLabels equivalence
// classes over the merged variable set and composed once per class — every
// member of a class has, by construction, an identical projected
// transition set within each factor, so composing a representative and
// copying the result to every other member is exact, not an
// approximation, and avoids repeating the same O(|T1|·|T2|) product work
// once per redundant operator.
func Merge(tm *task.TaskModel, a1, a2 *Abstraction, reduceLabels bool) *Abstraction {
	vars := mergeVars(a1.Vars, a2.Vars)

	relevant := make(map[int32]bool)
	for l := range a1.Transitions {
		relevant[l] = true
	}
	for l := range a2.Transitions {
		relevant[l] = true
	}

	var classOf map[int32]int32
	if reduceLabels && disjointVars(a1.Vars, a2.Vars) {
		labelOf, _ := ReduceLabels(tm, vars)
		classOf = make(map[int32]int32, len(relevant))
		for l := range relevant {
			classOf[l] = labelOf[l]
		}
	}

	classMembers := make(map[int32][]int32)
	for l := range relevant {
		class := l
		if classOf != nil {
			class = classOf[l]
		}
		classMembers[class] = append(classMembers[class], l)
	}

	n2 := int32(a2.NumStates)
	n1 := int32(a1.NumStates)
	outTransitions := make(map[int32][]Transition, len(relevant))

	for _, members := range classMembers {
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		rep := members[0]
		t1, in1 := a1.Transitions[rep]
		t2, in2 := a2.Transitions[rep]

		var composed []Transition
		switch {
		case in1 && in2:
			for _, x := range t1 {
				for _, y := range t2 {
					composed = append(composed, Transition{From: x.From*n2 + y.From, To: x.To*n2 + y.To})
				}
			}
		case in1:
			for s2 := int32(0); s2 < n2; s2++ {
				for _, x := range t1 {
					composed = append(composed, Transition{From: x.From*n2 + s2, To: x.To*n2 + s2})
				}
			}
		case in2:
			for s1 := int32(0); s1 < n1; s1++ {
				for _, y := range t2 {
					composed = append(composed, Transition{From: s1*n2 + y.From, To: s1*n2 + y.To})
				}
			}
		}
		for _, l := range members {
			outTransitions[l] = composed
		}
	}

	out := &Abstraction{
		Vars:        vars,
		NumStates:   int64(n1) * int64(n2),
		Transitions: outTransitions,
		LabelCost:   make(map[int32]int64, len(relevant)),
		Init:        a1.Init*n2 + a2.Init,
		Goal:        roaring.New(),
		atomicVar:   -1,
		left:        a1,
		right:       a2,
	}
	for l := range relevant {
		out.LabelCost[l] = int64(tm.Operators[l].Cost)
	}

	it1 := a1.Goal.Iterator()
	for it1.HasNext() {
		g1 := int32(it1.Next())
		it2 := a2.Goal.Iterator()
		for it2.HasNext() {
			g2 := int32(it2.Next())
			out.Goal.Add(uint32(g1*n2 + g2))
		}
	}

	computeDistances(out)
	pruneUnreachableIrrelevant(out)
	return out
}

func mergeVars(a, b []int32) []int32 {
	out := append(append([]int32(nil), a...), b...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func disjointVars(a, b []int32) bool {
	set := make(map[int32]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return false
		}
	}
	return true
}
