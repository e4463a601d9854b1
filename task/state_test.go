package task_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/task"
)

func twoBinaryVarsTask(t *testing.T) *task.TaskModel {
	t.Helper()
	vars := []task.Variable{
		{Name: "x", DomainSize: 2, AxiomLayer: -1, FactNames: []string{"x=0", "x=1"}},
		{Name: "y", DomainSize: 2, AxiomLayer: -1, FactNames: []string{"y=0", "y=1"}},
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

func TestPackUnpackRoundTrip(t *testing.T) {
	tm := twoBinaryVarsTask(t)
	for x := int32(0); x < 2; x++ {
		for y := int32(0); y < 2; y++ {
			values := []int32{x, y}
			packed := tm.Pack(values)
			got := tm.Unpack(packed)
			require.Equal(t, values, got)
		}
	}
}

func TestStateRegistryInterning(t *testing.T) {
	tm := twoBinaryVarsTask(t)
	reg := task.NewStateRegistry(tm)

	id1 := reg.Intern([]int32{0, 0})
	id2 := reg.Intern([]int32{0, 0})
	id3 := reg.Intern([]int32{1, 0})

	require.Equal(t, id1, id2, "identical assignments must intern to the same StateID")
	require.NotEqual(t, id1, id3)
	require.Equal(t, 2, reg.Len())
}

func TestApplyRequiresApplicability(t *testing.T) {
	tm := twoBinaryVarsTask(t)
	op := &tm.Operators[0]

	require.True(t, tm.Applicable(op, []int32{0, 0}))
	require.False(t, tm.Applicable(op, []int32{1, 0}))

	succ := tm.Apply(op, []int32{0, 0})
	require.Equal(t, []int32{1, 0}, succ)

	require.Panics(t, func() { tm.Apply(op, []int32{1, 0}) })
}

func TestGoalHolds(t *testing.T) {
	tm := twoBinaryVarsTask(t)
	require.False(t, tm.GoalHolds([]int32{1, 0}))
	require.True(t, tm.GoalHolds([]int32{1, 1}))
}
