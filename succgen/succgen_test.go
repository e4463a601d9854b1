package succgen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/succgen"
	"github.com/sasplan/fdplanner/task"
)

func buildSample(t *testing.T) (*task.TaskModel, *succgen.Generator) {
	t.Helper()
	vars := []task.Variable{
		{Name: "a", DomainSize: 3, AxiomLayer: -1},
		{Name: "b", DomainSize: 2, AxiomLayer: -1},
	}
	ops := []task.Operator{
		// o1 needs a=0, writes a=1: tests variable a.
		{Name: "o1", Cost: 1, PrePosts: []task.PrePost{{Var: 0, Pre: 0, Post: 1}}},
		// o2 needs a=1 and b=1 (prevail), writes a=2.
		{Name: "o2", Cost: 1, PrePosts: []task.PrePost{
			{Var: 0, Pre: 1, Post: 2},
			{Var: 1, Pre: 1, Post: 1},
		}},
		// o3 has no preconditions at all, writes b=1.
		{Name: "o3", Cost: 1, PrePosts: []task.PrePost{{Var: 1, Pre: task.NoPreconditionValue, Post: 1}}},
	}
	tm, err := task.NewTaskModel(vars, ops, nil, []int32{0, 0}, nil)
	require.NoError(t, err)
	return tm, succgen.Build(tm)
}

func applicableByBruteForce(tm *task.TaskModel, values []int32) map[string]bool {
	out := make(map[string]bool)
	for i := range tm.Operators {
		if tm.Applicable(&tm.Operators[i], values) {
			out[tm.Operators[i].Name] = true
		}
	}
	return out
}

func TestSuccessorGeneratorCompleteness(t *testing.T) {
	tm, gen := buildSample(t)

	cases := [][]int32{
		{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1},
	}
	for _, values := range cases {
		want := applicableByBruteForce(tm, values)
		bm := gen.ApplicableOperators(values)

		got := make(map[string]bool)
		it := bm.Iterator()
		for it.HasNext() {
			got[tm.Operators[it.Next()].Name] = true
		}
		require.Equal(t, want, got, "values=%v", values)
	}
}
