package pdbcollection

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/sasplan/fdplanner/task"
)

// operatorTouchedVars returns, per operator, the set of variables it has a
// real effect on (PrePost.Pre != Post — prevail conditions don't count,
// since they never write a value).
func operatorTouchedVars(tm *task.TaskModel) []mapset.Set[int32] {
	out := make([]mapset.Set[int32], len(tm.Operators))
	for i, op := range tm.Operators {
		s := mapset.NewSet[int32]()
		for _, pp := range op.PrePosts {
			if pp.Pre != pp.Post {
				s.Add(pp.Var)
			}
		}
		out[i] = s
	}
	return out
}

// computeAdditive builds the n x n additive-compatibility matrix for
// patterns: two patterns are additive iff no single operator has a real
// effect on a variable from both. Rather than testing every pair against
// every operator (O(patterns^2 * operators)), it walks each operator once
// and marks every pair of patterns it simultaneously touches as
// non-additive — cheaper whenever most patterns are small and most
// operators touch only a few of them.
func computeAdditive(tm *task.TaskModel, patterns [][]int32) [][]bool {
	n := len(patterns)
	patternSets := make([]mapset.Set[int32], n)
	for i, p := range patterns {
		patternSets[i] = mapset.NewSet[int32](p...)
	}

	additive := make([][]bool, n)
	for i := range additive {
		additive[i] = make([]bool, n)
		for j := range additive[i] {
			additive[i][j] = i != j
		}
	}

	for _, touched := range operatorTouchedVars(tm) {
		var touchedPatterns []int
		for i, ps := range patternSets {
			if ps.Intersect(touched).Cardinality() > 0 {
				touchedPatterns = append(touchedPatterns, i)
			}
		}
		for _, i := range touchedPatterns {
			for _, j := range touchedPatterns {
				if i != j {
					additive[i][j] = false
				}
			}
		}
	}
	return additive
}
