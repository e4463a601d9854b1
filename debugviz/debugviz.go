// Package debugviz renders a task's domain-transition graphs and causal
// graph as Graphviz DOT source, for the same kind of "dump the search
// space structure" debugging the original planner offered behind a debug
// build flag — here available as a plain library call any command can
// wire behind its own flag.
package debugviz

import (
	"fmt"

	"github.com/emicklei/dot"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/task"
)

// CausalGraph renders cg as a directed DOT graph, one node per variable
// (labeled with its human-readable name when tm is non-nil) and one edge
// per arc, with legacy (precondition-to-effect) arcs drawn solid and
// effect-condition-only arcs drawn dashed.
func CausalGraph(cg *causalgraph.Graph, tm *task.TaskModel) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make([]dot.Node, cg.NumVars())
	for v := 0; v < cg.NumVars(); v++ {
		n := g.Node(nodeID(v))
		n.Label(variableLabel(tm, int32(v)))
		nodes[v] = n
	}

	for u := 0; u < cg.NumVars(); u++ {
		for _, v := range cg.Successors(int32(u)) {
			e := g.Edge(nodes[u], nodes[v])
			if !cg.IsLegacyArc(int32(u), v) {
				e.Attr("style", "dashed")
			}
		}
	}

	return g.String()
}

// DTG renders one variable's domain-transition graph: one node per domain
// value (labeled with its fact name when tm is non-nil) and one edge per
// arc, labeled with the operator names it fires under.
func DTG(d *causalgraph.DTG, tm *task.TaskModel) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	g.Attr("label", fmt.Sprintf("DTG for var%d", d.Var))

	domainSize := len(d.Arcs)
	nodes := make([]dot.Node, domainSize)
	for val := 0; val < domainSize; val++ {
		n := g.Node(fmt.Sprintf("v%d_%d", d.Var, val))
		n.Label(factLabel(tm, d.Var, int32(val)))
		nodes[val] = n
	}

	for from, arcs := range d.Arcs {
		for _, a := range arcs {
			e := g.Edge(nodes[from], nodes[a.To])
			e.Label(arcLabel(tm, a))
		}
	}

	return g.String()
}

func nodeID(v int) string { return fmt.Sprintf("var%d", v) }

func variableLabel(tm *task.TaskModel, v int32) string {
	if tm == nil || int(v) >= len(tm.Variables) {
		return nodeID(int(v))
	}
	if name := tm.Variables[v].Name; name != "" {
		return name
	}
	return nodeID(int(v))
}

func factLabel(tm *task.TaskModel, v, val int32) string {
	if tm == nil || int(v) >= len(tm.Variables) {
		return fmt.Sprintf("%d", val)
	}
	names := tm.Variables[v].FactNames
	if int(val) < len(names) && names[val] != "" {
		return names[val]
	}
	return fmt.Sprintf("%d", val)
}

func arcLabel(tm *task.TaskModel, a causalgraph.Arc) string {
	if len(a.Labels) == 0 {
		return ""
	}
	if tm == nil || int(a.Labels[0].OperatorID) >= len(tm.Operators) {
		return fmt.Sprintf("%d op(s)", len(a.Labels))
	}
	if len(a.Labels) == 1 {
		return tm.Operators[a.Labels[0].OperatorID].Name
	}
	return fmt.Sprintf("%s +%d more", tm.Operators[a.Labels[0].OperatorID].Name, len(a.Labels)-1)
}
