package pdbcollection

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// tomitaMaximalCliques enumerates every maximal clique of the additive
// graph using the Tomita algorithm with pivoting: at each expansion, pick
// the pivot u in P∪X maximizing |P ∩ N(u)| and branch only on P \ N(u),
// since every vertex in N(u) is already covered by extending through u's
// own branch or a later one.
func tomitaMaximalCliques(additive [][]bool) [][]int32 {
	n := len(additive)
	neighbors := make([]mapset.Set[int32], n)
	for i := range neighbors {
		s := mapset.NewSet[int32]()
		for j := 0; j < n; j++ {
			if i != j && additive[i][j] {
				s.Add(int32(j))
			}
		}
		neighbors[i] = s
	}

	all := mapset.NewSet[int32]()
	for i := 0; i < n; i++ {
		all.Add(int32(i))
	}

	var cliques [][]int32
	expandClique(mapset.NewSet[int32](), all, mapset.NewSet[int32](), neighbors, &cliques)
	return cliques
}

func expandClique(R, P, X mapset.Set[int32], neighbors []mapset.Set[int32], out *[][]int32) {
	if P.Cardinality() == 0 && X.Cardinality() == 0 {
		*out = append(*out, sortedSlice(R))
		return
	}

	pivot := choosePivot(P, X, neighbors)
	candidates := sortedSlice(P.Difference(neighbors[pivot]))

	for _, v := range candidates {
		newR := R.Clone()
		newR.Add(v)
		expandClique(newR, P.Intersect(neighbors[v]), X.Intersect(neighbors[v]), neighbors, out)
		P.Remove(v)
		X.Add(v)
	}
}

// choosePivot returns the vertex in P∪X maximizing |P ∩ N(u)|, breaking
// ties by smallest index for determinism.
func choosePivot(P, X mapset.Set[int32], neighbors []mapset.Set[int32]) int32 {
	candidates := sortedSlice(P.Union(X))
	best := candidates[0]
	bestCount := -1
	for _, u := range candidates {
		count := P.Intersect(neighbors[u]).Cardinality()
		if count > bestCount {
			bestCount = count
			best = u
		}
	}
	return best
}

func sortedSlice(s mapset.Set[int32]) []int32 {
	out := s.ToSlice()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
