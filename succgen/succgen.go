// Package succgen compiles a task's operator set into a decision DAG keyed
// on (variable, value), and evaluates it against a state to collect every
// applicable operator.
//
// Node shape is a tagged sum type rather than an inheritance hierarchy of
// node kinds:
//
//   - switchNode: tests one variable, dispatching to a per-value child (or
//     the "any value" child, for operators unconstrained on that variable).
//   - leafNode: carries the operators whose preconditions are fully
//     confirmed once traversal reaches this node.
//   - emptyNode: a leaf with no operators (a distinct tag so callers never
//     need a nil check).
package succgen

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/sasplan/fdplanner/task"
)

// nodeKind tags which of the three node shapes a node instance holds.
type nodeKind uint8

const (
	kindEmpty nodeKind = iota
	kindLeaf
	kindSwitch
)

// node is one decision-DAG node. Only the fields relevant to kind are
// meaningful; this keeps the DAG a flat slice of value types rather than an
// interface hierarchy, trading a few unused bytes per node for zero
// allocation-per-node and zero dynamic dispatch.
type node struct {
	kind nodeKind

	// kindSwitch fields.
	testVar  int32
	children map[int32]int32 // value -> child node index
	anyChild int32           // index of the "value not constrained" child, or -1

	// kindLeaf fields.
	operators []int32 // operator indices confirmed applicable once reached
}

// Generator is a compiled successor generator: a DAG of nodes, rooted at
// nodes[root], built once from a TaskModel's operators.
type Generator struct {
	tm    *task.TaskModel
	nodes []node
	root  int32
}

// Build compiles a Generator for tm.
func Build(tm *task.TaskModel) *Generator {
	g := &Generator{tm: tm}

	facts := make(map[int32][]task.Fact, len(tm.Operators))
	all := make([]int32, len(tm.Operators))
	for i := range tm.Operators {
		all[i] = int32(i)
		facts[int32(i)] = tm.Operators[i].Preconditions()
	}
	g.root = g.buildNode(all, facts, make(map[int32]bool))
	return g
}

// buildNode recursively compiles a node covering the given candidate
// operator indices. tested tracks which variables have already been
// branched on along this path, so their preconditions are never
// re-examined (which would otherwise branch forever on the same variable).
// The next test variable is the lowest-index variable with an un-tested
// precondition among the candidates, the same deterministic,
// sorted-iteration-order discipline used throughout core.Graph.
func (g *Generator) buildNode(candidates []int32, facts map[int32][]task.Fact, tested map[int32]bool) int32 {
	if len(candidates) == 0 {
		g.nodes = append(g.nodes, node{kind: kindEmpty})
		return int32(len(g.nodes) - 1)
	}

	testVar := pickTestVariable(candidates, facts, tested)
	if testVar < 0 {
		g.nodes = append(g.nodes, node{kind: kindLeaf, operators: candidates})
		return int32(len(g.nodes) - 1)
	}

	byValue := make(map[int32][]int32)
	var unconstrained []int32
	for _, opIdx := range candidates {
		if pre, ok := findPre(facts[opIdx], testVar); ok {
			byValue[pre] = append(byValue[pre], opIdx)
		} else {
			unconstrained = append(unconstrained, opIdx)
		}
	}

	childTested := make(map[int32]bool, len(tested)+1)
	for v := range tested {
		childTested[v] = true
	}
	childTested[testVar] = true

	values := make([]int32, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	children := make(map[int32]int32, len(values))
	for _, v := range values {
		branch := append(append([]int32(nil), byValue[v]...), unconstrained...)
		children[v] = g.buildNode(branch, facts, childTested)
	}

	anyIdx := int32(-1)
	if len(unconstrained) > 0 {
		anyIdx = g.buildNode(unconstrained, facts, childTested)
	}

	myIdx := int32(len(g.nodes))
	g.nodes = append(g.nodes, node{kind: kindSwitch, testVar: testVar, children: children, anyChild: anyIdx})
	return myIdx
}

// findPre looks up a precondition on variable testVar among an operator's
// precondition facts.
func findPre(prePost []task.Fact, testVar int32) (int32, bool) {
	for _, f := range prePost {
		if f.Var == testVar {
			return f.Val, true
		}
	}
	return 0, false
}

// pickTestVariable returns the lowest-index variable with an un-tested
// precondition among candidates, or -1 if every candidate's preconditions
// are already covered by tested.
func pickTestVariable(candidates []int32, facts map[int32][]task.Fact, tested map[int32]bool) int32 {
	best := int32(-1)
	for _, opIdx := range candidates {
		for _, f := range facts[opIdx] {
			if tested[f.Var] {
				continue
			}
			if best < 0 || f.Var < best {
				best = f.Var
			}
		}
	}
	return best
}

// ApplicableOperators traverses the DAG against values, following the exact
// child for the tested variable's value AND always also the any-child
//, collecting every
// operator index whose preconditions are thereby confirmed. The returned
// bitmap is suitable for large, sparse operator-id sets that get unioned
// across many traversed branches without per-id duplicate bookkeeping.
func (g *Generator) ApplicableOperators(values []int32) *roaring.Bitmap {
	out := roaring.New()
	g.walk(g.root, values, out)
	return out
}

func (g *Generator) walk(idx int32, values []int32, out *roaring.Bitmap) {
	if idx < 0 {
		return
	}
	n := &g.nodes[idx]
	switch n.kind {
	case kindEmpty:
		return
	case kindLeaf:
		for _, op := range n.operators {
			out.Add(uint32(op))
		}
	case kindSwitch:
		val := values[n.testVar]
		if child, ok := n.children[val]; ok {
			g.walk(child, values, out)
		}
		g.walk(n.anyChild, values, out)
	}
}
