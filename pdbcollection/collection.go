package pdbcollection

import (
	"sort"

	"github.com/sasplan/fdplanner/pdb"
	"github.com/sasplan/fdplanner/task"
)

// lookupTable is the narrow interface a collection member needs: *pdb.PDB
// satisfies it directly. Tests substitute lighter-weight doubles without
// paying for a full PDB build.
type lookupTable interface {
	Lookup(values []int32) int64
}

// Collection is a canonical collection of pattern databases: the
// additive-compatibility graph over its patterns and the resulting maximal
// cliques are (re)computed whenever the pattern set changes.
type Collection struct {
	tm       *task.TaskModel
	Patterns [][]int32
	tables   []lookupTable

	additive [][]bool
	cliques  [][]int32
}

// NewCollection builds a canonical collection over patterns, each paired
// with its already-built lookup table (normally a *pdb.PDB).
func NewCollection(tm *task.TaskModel, patterns [][]int32, tables []lookupTable) *Collection {
	c := &Collection{tm: tm, Patterns: patterns, tables: tables}
	c.recompute()
	return c
}

func (c *Collection) recompute() {
	c.additive = computeAdditive(c.tm, c.Patterns)
	c.cliques = tomitaMaximalCliques(c.additive)
}

// ZeroOnePDBs builds the degenerate additive collection where every pattern
// is a single goal variable — a cheap default seed collection used before
// hill-climbing search runs.
func ZeroOnePDBs(tm *task.TaskModel) *Collection {
	seen := make(map[int32]bool)
	var patterns [][]int32
	var tables []lookupTable
	for _, g := range tm.Goal {
		if seen[g.Var] {
			continue
		}
		seen[g.Var] = true
		patterns = append(patterns, []int32{g.Var})
		tables = append(tables, pdb.Build(tm, []int32{g.Var}))
	}
	return NewCollection(tm, patterns, tables)
}

// Evaluate returns the canonical heuristic value: the max, over every
// maximal additive clique, of the sum of that clique's PDB values — or
// pdb.MaxCostValue if every clique is a dead end under its member PDBs.
func (c *Collection) Evaluate(values []int32) int64 {
	var best int64
	anyFinite := false
	for _, clique := range c.cliques {
		var sum int64
		dead := false
		for _, idx := range clique {
			v := c.tables[idx].Lookup(values)
			if v >= pdb.MaxCostValue {
				dead = true
				break
			}
			sum += v
		}
		if dead {
			continue
		}
		anyFinite = true
		if sum > best {
			best = sum
		}
	}
	if !anyFinite {
		return pdb.MaxCostValue
	}
	return best
}

// Add appends a new pattern/table pair and recomputes the additive graph
// and maximal cliques.
func (c *Collection) Add(pattern []int32, table lookupTable) {
	c.Patterns = append(c.Patterns, pattern)
	c.tables = append(c.tables, table)
	c.recompute()
}

// PruneDominated removes any pattern whose variable set is a proper
// subset of another pattern's in the collection — the superset
// pattern's abstraction captures at least the same variable interactions,
// so the subset pattern adds nothing but memory. This is an approximation
// long used by these collections: it is not a proof that the superset's
// value pointwise dominates the subset's, only that it usually does in
// practice.
func (c *Collection) PruneDominated() {
	keep := make([]bool, len(c.Patterns))
	for i := range keep {
		keep[i] = true
	}
	for i, pi := range c.Patterns {
		for j, pj := range c.Patterns {
			if i == j || !keep[i] {
				continue
			}
			if i != j && isVarSubset(pi, pj) && len(pi) < len(pj) {
				keep[i] = false
			}
		}
	}

	var patterns [][]int32
	var tables []lookupTable
	for i, k := range keep {
		if k {
			patterns = append(patterns, c.Patterns[i])
			tables = append(tables, c.tables[i])
		}
	}
	c.Patterns = patterns
	c.tables = tables
	c.recompute()
}

func isVarSubset(a, b []int32) bool {
	bs := make(map[int32]bool, len(b))
	for _, v := range b {
		bs[v] = true
	}
	for _, v := range a {
		if !bs[v] {
			return false
		}
	}
	return true
}

// Cliques returns the currently computed maximal cliques, pattern indices
// sorted within each clique — exposed for tests and diagnostics.
func (c *Collection) Cliques() [][]int32 {
	out := make([][]int32, len(c.cliques))
	for i, cl := range c.cliques {
		out[i] = append([]int32(nil), cl...)
		sort.Slice(out[i], func(a, b int) bool { return out[i][a] < out[i][b] })
	}
	return out
}
