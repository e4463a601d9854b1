package causalgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sasplan/fdplanner/task"
)

// simplify reduces one DTG's labels:
//
//   - Among labels with identical projected conditions (same set of
//     LocalConditions facts) keep only the cheapest.
//   - Prune labels dominated by a proper subset of conditions at <= cost:
//     if label A's condition set is a subset of label B's and A.Cost <=
//     B.Cost, then B can never fire more easily than A, so B is redundant.
//
// This groups labels by canonical signature, then prunes dominated entries
// by scanning subsets up to a small mask bound: when an arc's label
// count is within MaxDominanceSubsetBound, every pair is compared directly
// (O(n^2) over a small n); above the bound we skip dominance pruning for
// that arc entirely (simplification is a correctness-preserving
// optimization — so skipping it is fine, it must just never
// introduce a wrong transition).
const MaxDominanceSubsetBound = 31

func (d *DTG) simplify() {
	for vi := range d.Arcs {
		for ai := range d.Arcs[vi] {
			d.Arcs[vi][ai].Labels = simplifyLabels(d.Arcs[vi][ai].Labels)
		}
	}
}

func simplifyLabels(labels []Label) []Label {
	// Step 1: group by canonical signature (sorted condition fact set),
	// keep only the cheapest per signature.
	bySig := make(map[string]int) // signature -> index into deduped
	deduped := make([]Label, 0, len(labels))
	for _, lbl := range labels {
		sig := signature(lbl.LocalConditions)
		if idx, ok := bySig[sig]; ok {
			if lbl.Cost < deduped[idx].Cost {
				deduped[idx] = lbl
			}
			continue
		}
		bySig[sig] = len(deduped)
		deduped = append(deduped, lbl)
	}

	if len(deduped) > MaxDominanceSubsetBound {
		return deduped
	}

	// Step 2: dominance pruning — drop label j if some other label i has a
	// (non-strictly) smaller-or-equal condition set at <= cost, i.e. i
	// dominates j (i is always at least as easy to fire and at least as
	// cheap).
	dominated := make([]bool, len(deduped))
	for i := range deduped {
		for j := range deduped {
			if i == j || dominated[j] {
				continue
			}
			// Post-dedup, two distinct entries never have identical
			// condition sets, so subset-in-both-directions cannot happen
			// here — no tie-break is needed.
			if isSubset(deduped[i].LocalConditions, deduped[j].LocalConditions) &&
				deduped[i].Cost <= deduped[j].Cost {
				dominated[j] = true
			}
		}
	}

	out := make([]Label, 0, len(deduped))
	for i, lbl := range deduped {
		if !dominated[i] {
			out = append(out, lbl)
		}
	}
	return out
}

// signature returns a canonical, order-independent string key for a fact
// set, used to group labels with identical projected conditions.
func signature(facts []task.Fact) string {
	sorted := append([]task.Fact(nil), facts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Var != sorted[j].Var {
			return sorted[i].Var < sorted[j].Var
		}
		return sorted[i].Val < sorted[j].Val
	})
	var b strings.Builder
	for _, f := range sorted {
		fmt.Fprintf(&b, "%d=%d,", f.Var, f.Val)
	}
	return b.String()
}

// isSubset reports whether every fact in a also appears in b.
func isSubset(a, b []task.Fact) bool {
	for _, fa := range a {
		found := false
		for _, fb := range b {
			if fa == fb {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
