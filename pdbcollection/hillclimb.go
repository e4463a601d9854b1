package pdbcollection

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/pdb"
	"github.com/sasplan/fdplanner/succgen"
	"github.com/sasplan/fdplanner/task"
)

// HillClimbOptions bounds and tunes the search for which patterns to add to
// a starting collection.
type HillClimbOptions struct {
	MaxPatternStates    int64   // reject any single candidate pattern exceeding this many abstract states
	CollectionMaxStates int64   // reject a candidate that would push the whole collection over this total
	SampleCount         int     // number of random-walk states sampled per candidate evaluation
	ImprovementFloor    int     // minimum number of improved samples required to accept a candidate
	AverageOperatorCost float64 // scales the random-walk length the way fd's hill-climbing driver does
}

// HillClimb runs Haslum-style hill-climbing search starting from the
// zero-one PDB collection: on each round it proposes new patterns by
// extending an existing pattern with a legacy-causal-graph predecessor,
// evaluates each candidate against a batch of randomly sampled states, and
// adopts the one that improves the most samples — stopping once no
// candidate clears ImprovementFloor or adopting the best candidate would
// push the collection past CollectionMaxStates.
func HillClimb(tm *task.TaskModel, cg *causalgraph.Graph, gen *succgen.Generator, opts HillClimbOptions, rng *rand.Rand) *Collection {
	coll := ZeroOnePDBs(tm)
	totalStates := collectionStates(coll)
	walkMean := 4 * float64(coll.Evaluate(tm.InitialValues)) / maxFloat(opts.AverageOperatorCost, 1)
	samples := sampleRandomWalkStates(tm, gen, opts.SampleCount, walkMean, rng)

	for {
		candidates := proposeCandidates(tm, cg, coll, opts.MaxPatternStates)
		if len(candidates) == 0 {
			break
		}

		bestIdx := -1
		bestImproved := 0
		var bestTable *pdb.PDB
		for i, cand := range candidates {
			table := pdb.Build(tm, cand)
			improved := countImproved(coll, cand, table, samples)
			if improved > bestImproved {
				bestImproved = improved
				bestIdx = i
				bestTable = table
			}
		}

		if bestIdx < 0 || bestImproved < opts.ImprovementFloor {
			break
		}
		if totalStates+bestTable.NumStates() > opts.CollectionMaxStates {
			break
		}

		coll.Add(candidates[bestIdx], bestTable)
		totalStates += bestTable.NumStates()
	}

	coll.PruneDominated()
	return coll
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func collectionStates(c *Collection) int64 {
	var total int64
	for _, t := range c.tables {
		if p, ok := t.(*pdb.PDB); ok {
			total += p.NumStates()
		}
	}
	return total
}

// countImproved reports how many of the sampled states get a strictly
// higher canonical heuristic value once candidate/table is hypothetically
// folded into coll, without mutating coll itself.
func countImproved(coll *Collection, candidate []int32, table *pdb.PDB, samples [][]int32) int {
	candSet := mapset.NewSet[int32](candidate...)
	touched := operatorTouchedVars(coll.tm)
	candAdditive := make([]bool, len(coll.Patterns))
	for i, p := range coll.Patterns {
		pSet := mapset.NewSet[int32](p...)
		additive := true
		for _, t := range touched {
			if t.Intersect(candSet).Cardinality() > 0 && t.Intersect(pSet).Cardinality() > 0 {
				additive = false
				break
			}
		}
		candAdditive[i] = additive
	}

	improved := 0
	for _, values := range samples {
		before := coll.Evaluate(values)
		after := evaluateWithCandidate(coll, values, table, candAdditive)
		if after > before {
			improved++
		}
	}
	return improved
}

// evaluateWithCandidate computes the canonical value as if table had been
// added to coll, reusing coll's existing cliques plus the single-pattern
// clique {candidate} and every existing clique whose members are all
// additive with candidate per candAdditive.
func evaluateWithCandidate(coll *Collection, values []int32, table *pdb.PDB, candAdditive []bool) int64 {
	best := coll.Evaluate(values)

	candVal := table.Lookup(values)
	if candVal >= pdb.MaxCostValue {
		return best
	}
	if candVal > best {
		best = candVal
	}

	for _, clique := range coll.cliques {
		allAdditive := true
		for _, idx := range clique {
			if !candAdditive[idx] {
				allAdditive = false
				break
			}
		}
		if !allAdditive {
			continue
		}

		sum := candVal
		dead := false
		for _, idx := range clique {
			v := coll.tables[idx].Lookup(values)
			if v >= pdb.MaxCostValue {
				dead = true
				break
			}
			sum += v
		}
		if !dead && sum > best {
			best = sum
		}
	}
	return best
}

// proposeCandidates generates one new pattern per (existing pattern,
// legacy predecessor of one of its variables) pair not already present in
// the collection or in the candidate list, discarding any whose abstract
// state count exceeds maxStates.
func proposeCandidates(tm *task.TaskModel, cg *causalgraph.Graph, coll *Collection, maxStates int64) [][]int32 {
	existing := make(map[string]bool, len(coll.Patterns))
	for _, p := range coll.Patterns {
		existing[patternKey(p)] = true
	}

	seen := make(map[string]bool)
	var out [][]int32
	for _, p := range coll.Patterns {
		for _, v := range p {
			for _, u := range legacyPredecessors(cg, v) {
				if containsVar(p, u) {
					continue
				}
				cand := append(append([]int32(nil), p...), u)
				sort.Slice(cand, func(i, j int) bool { return cand[i] < cand[j] })

				key := patternKey(cand)
				if existing[key] || seen[key] {
					continue
				}
				if patternStateSize(tm, cand) > maxStates {
					continue
				}
				seen[key] = true
				out = append(out, cand)
			}
		}
	}
	return out
}

// legacyPredecessors returns every u with a legacy arc u -> v.
func legacyPredecessors(cg *causalgraph.Graph, v int32) []int32 {
	var preds []int32
	for u := int32(0); u < int32(cg.NumVars()); u++ {
		if u == v {
			continue
		}
		for _, s := range cg.Successors(u) {
			if s == v && cg.IsLegacyArc(u, v) {
				preds = append(preds, u)
				break
			}
		}
	}
	return preds
}

func patternStateSize(tm *task.TaskModel, pattern []int32) int64 {
	n := int64(1)
	for _, v := range pattern {
		n *= int64(tm.Variables[v].DomainSize)
	}
	return n
}

func containsVar(p []int32, v int32) bool {
	for _, x := range p {
		if x == v {
			return true
		}
	}
	return false
}

func patternKey(p []int32) string {
	var b strings.Builder
	for _, v := range p {
		b.WriteString(strconv.Itoa(int(v)))
		b.WriteByte(',')
	}
	return b.String()
}

// sampleRandomWalkStates takes count random walks from the initial state,
// each of a geometrically distributed length (one Bernoulli trial per extra
// step) with mean about meanLength, choosing a
// uniformly random applicable operator at every step and stopping early at
// a dead end.
func sampleRandomWalkStates(tm *task.TaskModel, gen *succgen.Generator, count int, meanLength float64, rng *rand.Rand) [][]int32 {
	out := make([][]int32, 0, count)
	for i := 0; i < count; i++ {
		values := append([]int32(nil), tm.InitialValues...)
		length := geometricLength(meanLength, rng)
		for step := 0; step < length; step++ {
			ids := gen.ApplicableOperators(values).ToArray()
			if len(ids) == 0 {
				break
			}
			choice := ids[rng.Intn(len(ids))]
			values = tm.Apply(&tm.Operators[choice], values)
		}
		out = append(out, values)
	}
	return out
}

// geometricLength samples a walk length from a geometric distribution with
// the given mean, capped to guard against runaway walks on near-certain
// continuation probabilities.
func geometricLength(mean float64, rng *rand.Rand) int {
	if mean < 1 {
		mean = 1
	}
	continueProb := mean / (mean + 1)
	length := 0
	for length < 10_000 && rng.Float64() < continueProb {
		length++
	}
	if length == 0 {
		length = 1
	}
	return length
}
