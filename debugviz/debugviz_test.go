package debugviz_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/debugviz"
	"github.com/sasplan/fdplanner/task"
)

// sequentialTask builds the same minimal two-step chain used throughout
// package search's tests: o1 requires x=0 and sets x 0->1, o2
// requires x=1 (prevail) and sets y 0->1.
func sequentialTask(t *testing.T) *task.TaskModel {
	t.Helper()
	vars := []task.Variable{
		{Name: "x", DomainSize: 2, AxiomLayer: -1, FactNames: []string{"x=0", "x=1"}},
		{Name: "y", DomainSize: 2, AxiomLayer: -1, FactNames: []string{"y=0", "y=1"}},
	}
	ops := []task.Operator{
		{Name: "o1", Cost: 1, PrePosts: []task.PrePost{{Var: 0, Pre: 0, Post: 1}}},
		{Name: "o2", Cost: 1, PrePosts: []task.PrePost{
			{Var: 0, Pre: 1, Post: 1}, // prevail: o2 needs x=1
			{Var: 1, Pre: 0, Post: 1},
		}},
	}
	goal := []task.Fact{{Var: 0, Val: 1}, {Var: 1, Val: 1}}
	tm, err := task.NewTaskModel(vars, ops, nil, []int32{0, 0}, goal)
	require.NoError(t, err)
	return tm
}

func TestCausalGraphRendersVariableNamesAndArc(t *testing.T) {
	tm := sequentialTask(t)
	cg := causalgraph.Build(tm)

	out := debugviz.CausalGraph(cg, tm)
	require.Contains(t, out, "digraph")
	require.Contains(t, out, "->")
	require.True(t, strings.Contains(out, "x") && strings.Contains(out, "y"))
}

func TestCausalGraphFallsBackToVarIndexWithoutTaskModel(t *testing.T) {
	tm := sequentialTask(t)
	cg := causalgraph.Build(tm)

	out := debugviz.CausalGraph(cg, nil)
	require.Contains(t, out, "var0")
	require.Contains(t, out, "var1")
}

func TestDTGRendersFactNamesAndOperatorLabel(t *testing.T) {
	tm := sequentialTask(t)
	dtgs := causalgraph.BuildAll(tm)
	require.Len(t, dtgs, 2)

	out := debugviz.DTG(dtgs[0], tm)
	require.Contains(t, out, "x=0")
	require.Contains(t, out, "x=1")
	require.Contains(t, out, "o1")
}
