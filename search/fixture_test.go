package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/task"
)

// sequentialTask builds a minimal two-step chain: o1 requires x=0 and sets
// x 0->1, o2 requires x=1 (prevail) and sets y 0->1. The unique
// plan is [o1, o2]; every engine in this package should find exactly that,
// whatever order it explores successors in.
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
