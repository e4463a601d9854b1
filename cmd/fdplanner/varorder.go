package main

import (
	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/cliconfig"
	"github.com/sasplan/fdplanner/task"
)

// variableOrder resolves a cliconfig.MergeStrategy into the concrete
// merge-and-shrink variable order, the step cliconfig's own design
// decision leaves to this command.
func variableOrder(tm *task.TaskModel, cg *causalgraph.Graph, strategy cliconfig.MergeStrategy) []int32 {
	switch strategy {
	case cliconfig.MergeLinearGiven:
		return declaredOrder(tm)
	case cliconfig.MergeLinearReverseLevel:
		return reverseOrder(tm)
	default: // cliconfig.MergeLinearCG
		return causalGraphOrder(tm, cg)
	}
}

func declaredOrder(tm *task.TaskModel) []int32 {
	order := make([]int32, len(tm.Variables))
	for i := range order {
		order[i] = int32(i)
	}
	return order
}

func reverseOrder(tm *task.TaskModel) []int32 {
	order := declaredOrder(tm)
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// causalGraphOrder visits goal variables first, then breadth-first walks
// backward along causal-graph arcs (v's predecessors are variables whose
// value changes can trigger a change in v), so a variable is folded in
// before the variables it causally depends on, layer by layer outward
// from the goal. Any variable the goal doesn't causally depend on is
// appended afterward in declared order.
func causalGraphOrder(tm *task.TaskModel, cg *causalgraph.Graph) []int32 {
	n := cg.NumVars()
	predecessors := make([][]int32, n)
	for u := 0; u < n; u++ {
		for _, v := range cg.Successors(int32(u)) {
			predecessors[v] = append(predecessors[v], int32(u))
		}
	}

	visited := make([]bool, n)
	var order, frontier []int32
	for _, f := range tm.Goal {
		if !visited[f.Var] {
			visited[f.Var] = true
			frontier = append(frontier, f.Var)
		}
	}
	for i := 0; i < len(frontier); i++ {
		v := frontier[i]
		order = append(order, v)
		for _, p := range predecessors[v] {
			if !visited[p] {
				visited[p] = true
				frontier = append(frontier, p)
			}
		}
	}
	for v := int32(0); int(v) < n; v++ {
		if !visited[v] {
			order = append(order, v)
		}
	}
	return order
}
