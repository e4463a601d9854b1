package pdb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/pdb"
	"github.com/sasplan/fdplanner/task"
)

// deadEndTask builds spec.md §8 scenario 3: pattern [a] alone looks
// solvable (goal a=2), but every operator writing a requires prevail b=0,
// and no operator ever resets b once it is 1 — so pattern [a,b] must report
// a dead end from any state with b=1, while pattern [a] alone cannot see it.
func deadEndTask(t *testing.T) *task.TaskModel {
	t.Helper()
	vars := []task.Variable{
		{Name: "a", DomainSize: 3, AxiomLayer: -1},
		{Name: "b", DomainSize: 2, AxiomLayer: -1},
	}
	ops := []task.Operator{
		{Name: "inc_a_0_1", Cost: 1, PrePosts: []task.PrePost{
			{Var: 0, Pre: 0, Post: 1},
			{Var: 1, Pre: 0, Post: 0}, // prevail b=0
		}},
		{Name: "inc_a_1_2", Cost: 1, PrePosts: []task.PrePost{
			{Var: 0, Pre: 1, Post: 2},
			{Var: 1, Pre: 0, Post: 0}, // prevail b=0
		}},
		{Name: "set_b", Cost: 1, PrePosts: []task.PrePost{{Var: 1, Pre: 0, Post: 1}}},
	}
	goal := []task.Fact{{Var: 0, Val: 2}}
	tm, err := task.NewTaskModel(vars, ops, nil, []int32{0, 0}, goal)
	require.NoError(t, err)
	return tm
}

func TestSingleVariablePatternMissesDeadEnd(t *testing.T) {
	tm := deadEndTask(t)
	p := pdb.Build(tm, []int32{0})
	require.NotEqual(t, pdb.MaxCostValue, p.Lookup([]int32{0, 1}),
		"pattern [a] alone cannot see that b=1 blocks every path to a=2")
}

func TestTwoVariablePatternSeesDeadEnd(t *testing.T) {
	tm := deadEndTask(t)
	p := pdb.Build(tm, []int32{0, 1})

	require.EqualValues(t, pdb.MaxCostValue, p.Lookup([]int32{0, 1}),
		"b=1 with no operator resetting it is a genuine dead end")
	require.EqualValues(t, pdb.MaxCostValue, p.Lookup([]int32{1, 1}))

	require.EqualValues(t, 2, p.Lookup([]int32{0, 0}), "inc_a_0_1 then inc_a_1_2, both requiring b=0")
	require.EqualValues(t, 1, p.Lookup([]int32{1, 0}))
	require.EqualValues(t, 0, p.Lookup([]int32{2, 0}))
}
