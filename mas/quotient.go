package mas

import "github.com/RoaringBitmap/roaring/v2"

// applyQuotient replaces a's state space with the one induced by groupOf
// (a function on the CURRENT state set, len(groupOf) == a.NumStates,
// values in [0, numGroups)): transitions are re-keyed and deduplicated,
// the goal bitset and Init are mapped through, distances are recomputed
// from scratch, and a's own quotient (composed, so Lookup on a merged
// parent still resolves straight through to the final state space) is
// extended to account for the extra collapse.
//
// This is the one place every shrink strategy (groups of equivalent or
// budget-forced-together states) funnels through, so "shrinking may only
// merge states" (never split or reorder in a way that loses information
// about kept states) only has to be argued here once. Post-merge pruning
// does not use it; pruneUnreachableIrrelevant builds its own mapping.
func applyQuotient(a *Abstraction, groupOf []int32, numGroups int64) {
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
			nt := Transition{From: groupOf[t.From], To: groupOf[t.To]}
			key := [2]int32{nt.From, nt.To}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, nt)
		}
		if len(out) > 0 {
			newTransitions[label] = out
		}
	}
	a.Transitions = newTransitions

	newGoal := roaring.New()
	it := a.Goal.Iterator()
	for it.HasNext() {
		newGoal.Add(uint32(groupOf[int32(it.Next())]))
	}
	a.Goal = newGoal

	a.Init = groupOf[a.Init]
	a.NumStates = numGroups

	computeDistances(a)
}
