package cea_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/cea"
	"github.com/sasplan/fdplanner/task"
)

// crossVariableTask builds a small two-variable task where reaching the
// goal on x requires y to already hold a prevailed value: o_y requires y=0
// and sets y 0->1; o_x requires y=1 (prevail) and sets x 0->1.
// This is the minimal shape that exercises cea's cross-variable transition
// suspension and its recursive preferred-operator walk.
func crossVariableTask(t *testing.T) (*task.TaskModel, int32, int32) {
	t.Helper()
	vars := []task.Variable{
		{Name: "x", DomainSize: 2, AxiomLayer: -1},
		{Name: "y", DomainSize: 2, AxiomLayer: -1},
	}
	ops := []task.Operator{
		{Name: "o_y", Cost: 1, PrePosts: []task.PrePost{{Var: 1, Pre: 0, Post: 1}}},
		{Name: "o_x", Cost: 1, PrePosts: []task.PrePost{
			{Var: 0, Pre: 0, Post: 1},
			{Var: 1, Pre: 1, Post: 1}, // prevail: o_x also needs y=1
		}},
	}
	goal := []task.Fact{{Var: 0, Val: 1}}
	tm, err := task.NewTaskModel(vars, ops, nil, []int32{0, 0}, goal)
	require.NoError(t, err)
	return tm, tm.Operators[0].ID(), tm.Operators[1].ID()
}

func TestEvaluateResolvesSuspendedCrossVariableTransition(t *testing.T) {
	tm, oY, oX := crossVariableTask(t)
	dtgs := causalgraph.BuildAll(tm)
	c := cea.NewContext(tm, dtgs)

	res := c.Evaluate(tm.InitialValues)

	require.EqualValues(t, 2, res.Value, "o_y (cost 1) then o_x (cost 1) = 2")
	require.ElementsMatch(t, []int32{oY}, res.Preferred,
		"o_x cannot fire yet (y still 0); only o_y is immediately applicable")
	_ = oX
}

func TestEvaluateDeadEnd(t *testing.T) {
	vars := []task.Variable{{Name: "a", DomainSize: 2, AxiomLayer: -1}}
	goal := []task.Fact{{Var: 0, Val: 1}}
	tm, err := task.NewTaskModel(vars, nil, nil, []int32{0}, goal)
	require.NoError(t, err)

	dtgs := causalgraph.BuildAll(tm)
	c := cea.NewContext(tm, dtgs)
	res := c.Evaluate(tm.InitialValues)
	require.EqualValues(t, cea.MaxCostValue, res.Value)
	require.Empty(t, res.Preferred)
}
