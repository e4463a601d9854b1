package relax_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/relax"
	"github.com/sasplan/fdplanner/task"
)

// unitCostReachabilityTask builds spec.md §8 scenario 1: two binary
// variables x, y (initially 0,0), goal x=1 ∧ y=1, o1: x=1, o2: y=1.
func unitCostReachabilityTask(t *testing.T) *task.TaskModel {
	t.Helper()
	vars := []task.Variable{
		{Name: "x", DomainSize: 2, AxiomLayer: -1},
		{Name: "y", DomainSize: 2, AxiomLayer: -1},
	}
	ops := []task.Operator{
		{Name: "o1", Cost: 1, PrePosts: []task.PrePost{{Var: 0, Pre: 0, Post: 1}}},
		{Name: "o2", Cost: 1, PrePosts: []task.PrePost{{Var: 1, Pre: 0, Post: 1}}},
	}
	goal := []task.Fact{{Var: 0, Val: 1}, {Var: 1, Val: 1}}
	tm, err := task.NewTaskModel(vars, ops, nil, []int32{0, 0}, goal)
	require.NoError(t, err)
	return tm
}

func TestScenario1HeuristicValues(t *testing.T) {
	tm := unitCostReachabilityTask(t)
	m := relax.Build(tm)

	require.EqualValues(t, 1, relax.HMax(m, tm.InitialValues))
	require.EqualValues(t, 2, relax.HAdd(m, tm.InitialValues))

	ff := relax.HFF(m, tm.InitialValues, relax.DefaultOptions())
	require.EqualValues(t, 2, ff.Value)
	require.ElementsMatch(t, []int32{0, 1}, ff.RelaxedOps)
	require.ElementsMatch(t, []int32{0, 1}, ff.Preferred, "both o1 and o2 apply directly in the initial state")
}

func TestDeadEndReturnsMaxCostValue(t *testing.T) {
	vars := []task.Variable{{Name: "a", DomainSize: 2, AxiomLayer: -1}}
	goal := []task.Fact{{Var: 0, Val: 1}}
	tm, err := task.NewTaskModel(vars, nil, nil, []int32{0}, goal)
	require.NoError(t, err)

	m := relax.Build(tm)
	require.EqualValues(t, relax.MaxCostValue, relax.HMax(m, tm.InitialValues))
	require.EqualValues(t, relax.MaxCostValue, relax.HAdd(m, tm.InitialValues))
	require.EqualValues(t, relax.MaxCostValue, relax.HFF(m, tm.InitialValues, relax.DefaultOptions()).Value)
}
