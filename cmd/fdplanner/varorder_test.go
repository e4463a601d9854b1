package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/cliconfig"
	"github.com/sasplan/fdplanner/task"
)

// chainTask builds a three-variable causal chain: o1 requires x=0 and sets
// x 0->1, o2 requires x=1 to set y 0->1, o3 requires y=1 to set z
// 0->1. The goal is z=1, so the causal graph's goal-backward traversal
// should fold z, then y, then x.
func chainTask(t *testing.T) *task.TaskModel {
	t.Helper()
	vars := []task.Variable{
		{Name: "x", DomainSize: 2, AxiomLayer: -1, FactNames: []string{"x=0", "x=1"}},
		{Name: "y", DomainSize: 2, AxiomLayer: -1, FactNames: []string{"y=0", "y=1"}},
		{Name: "z", DomainSize: 2, AxiomLayer: -1, FactNames: []string{"z=0", "z=1"}},
	}
	ops := []task.Operator{
		{Name: "o1", Cost: 1, PrePosts: []task.PrePost{{Var: 0, Pre: 0, Post: 1}}},
		{Name: "o2", Cost: 1, PrePosts: []task.PrePost{
			{Var: 0, Pre: 1, Post: 1},
			{Var: 1, Pre: 0, Post: 1},
		}},
		{Name: "o3", Cost: 1, PrePosts: []task.PrePost{
			{Var: 1, Pre: 1, Post: 1},
			{Var: 2, Pre: 0, Post: 1},
		}},
	}
	goal := []task.Fact{{Var: 2, Val: 1}}
	tm, err := task.NewTaskModel(vars, ops, nil, []int32{0, 0, 0}, goal)
	require.NoError(t, err)
	return tm
}

func TestVariableOrderDeclaredIsIdentity(t *testing.T) {
	tm := chainTask(t)
	cg := causalgraph.Build(tm)
	order := variableOrder(tm, cg, cliconfig.MergeLinearGiven)
	require.Equal(t, []int32{0, 1, 2}, order)
}

func TestVariableOrderReverseIsReversedIdentity(t *testing.T) {
	tm := chainTask(t)
	cg := causalgraph.Build(tm)
	order := variableOrder(tm, cg, cliconfig.MergeLinearReverseLevel)
	require.Equal(t, []int32{2, 1, 0}, order)
}

func TestVariableOrderCausalGraphStartsAtGoalAndWalksBackward(t *testing.T) {
	tm := chainTask(t)
	cg := causalgraph.Build(tm)
	order := variableOrder(tm, cg, cliconfig.MergeLinearCG)
	require.Len(t, order, 3)
	require.Equal(t, int32(2), order[0], "goal variable z folds in first")
	require.Equal(t, int32(0), order[len(order)-1], "x has no causal predecessor, folds in last")
}
