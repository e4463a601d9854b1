package mas

import (
	"fmt"
	"math/rand"
	"sort"
)

// ShrinkStrategy selects which of the three supported strategies a call to
// Shrink uses. Unknown strategy values are rejected at configuration time
// by cliconfig, never reaching here.
type ShrinkStrategy int

const (
	ShrinkFHBucket ShrinkStrategy = iota
	ShrinkBisimulation
	ShrinkDFP
)

// Shrink reduces a toward at most maxStates states in place using
// strategy, a no-op if a already fits. ShrinkBisimulation never merges
// states with different H, so it leaves more than maxStates states when a
// has more distinct H values than that. rng is consulted only by
// ShrinkFHBucket's randomized bucket-merge order; pass nil for the
// deterministic order.
func Shrink(a *Abstraction, strategy ShrinkStrategy, maxStates int64, rng *rand.Rand) {
	if a.NumStates <= maxStates {
		return
	}
	switch strategy {
	case ShrinkFHBucket:
		fhBucketShrink(a, maxStates, rng)
	case ShrinkBisimulation:
		bisimulationShrink(a, maxStates, false)
	case ShrinkDFP:
		bisimulationShrink(a, maxStates, true)
	}
}

// fhBucketShrink groups states by (g+h, h) — the f/h-layer bucketing
// strategy — then, while that leaves more groups than maxStates, merges
// adjacent buckets (adjacent in sorted (f, h) order, or a random pair when
// rng is non-nil) until the budget fits.
func fhBucketShrink(a *Abstraction, maxStates int64, rng *rand.Rand) {
	type key struct{ f, h int64 }
	buckets := make(map[key][]int32)
	for s := int64(0); s < a.NumStates; s++ {
		k := key{f: a.G[s] + a.H[s], h: a.H[s]}
		buckets[k] = append(buckets[k], int32(s))
	}

	type group struct {
		k      key
		states []int32
	}
	groups := make([]group, 0, len(buckets))
	for k, states := range buckets {
		groups = append(groups, group{k: k, states: states})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].k.f != groups[j].k.f {
			return groups[i].k.f < groups[j].k.f
		}
		return groups[i].k.h < groups[j].k.h
	})

	for int64(len(groups)) > maxStates {
		i := 0
		if rng != nil && len(groups) > 2 {
			i = rng.Intn(len(groups) - 1)
		}
		merged := group{k: groups[i].k, states: append(groups[i].states, groups[i+1].states...)}
		groups[i] = merged
		groups = append(groups[:i+1], groups[i+2:]...)
	}

	groupOf := make([]int32, a.NumStates)
	for gi, g := range groups {
		for _, s := range g.states {
			groupOf[s] = int32(gi)
		}
	}
	applyQuotient(a, groupOf, int64(len(groups)))
}

// bisimulationShrink refines a partition seeded by h-layer (two states
// only ever share a group if they have the same H) by repeatedly
// splitting groups whose members disagree on the multiset of
// (label, target-group) successors, stopping at the first fixpoint or the
// first refinement step that would exceed maxStates — whichever comes
// first, matching "refine until stable or budget reached". Passing
// boundByLayerSweep=true (ShrinkDFP) changes one thing only: when the
// initial h-layer partition already has more groups than maxStates, the
// states are shrunk with fhBucketShrink instead. Otherwise both modes run
// the same refinement over all groups at once; there is no per-h-layer
// sweep and no freezing of individual groups.
func bisimulationShrink(a *Abstraction, maxStates int64, boundByLayerSweep bool) {
	n := int(a.NumStates)
	groupOf := make([]int32, n)
	hGroupID := make(map[int64]int32)
	for s := 0; s < n; s++ {
		h := a.H[s]
		id, ok := hGroupID[h]
		if !ok {
			id = int32(len(hGroupID))
			hGroupID[h] = id
		}
		groupOf[s] = id
	}
	numGroups := int64(len(hGroupID))
	if boundByLayerSweep && numGroups > maxStates {
		// Even the coarsest h-layer partition overflows the budget: fall
		// back to f/h bucketing's adjacent-merge to fit, since bisimulation
		// refinement can only grow the group count from here.
		fhBucketShrink(a, maxStates, nil)
		return
	}

	for {
		sig := make([]string, n)
		for s := 0; s < n; s++ {
			var pairs [][2]int32
			for label, ts := range a.Transitions {
				for _, t := range ts {
					if int(t.From) == s {
						pairs = append(pairs, [2]int32{label, groupOf[t.To]})
					}
				}
			}
			sort.Slice(pairs, func(i, j int) bool {
				if pairs[i][0] != pairs[j][0] {
					return pairs[i][0] < pairs[j][0]
				}
				return pairs[i][1] < pairs[j][1]
			})
			sig[s] = fmt.Sprintf("%d|%v", groupOf[s], pairs)
		}

		newGroupOf, newNumGroups := regroupBySignature(sig)
		if newNumGroups == numGroups {
			break // fixpoint
		}
		if newNumGroups > maxStates {
			break // would overflow the budget; keep the prior, coarser partition
		}
		groupOf = newGroupOf
		numGroups = newNumGroups
	}

	if numGroups == int64(n) {
		return // refinement never merged anything; leave a untouched
	}
	applyQuotient(a, groupOf, numGroups)
}

func regroupBySignature(sig []string) ([]int32, int64) {
	ids := make(map[string]int32)
	out := make([]int32, len(sig))
	for s, k := range sig {
		id, ok := ids[k]
		if !ok {
			id = int32(len(ids))
			ids[k] = id
		}
		out[s] = id
	}
	return out, int64(len(ids))
}
