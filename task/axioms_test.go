package task_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/task"
)

// derivedVarTask builds a task with one primary variable p and one derived
// variable d (layer 0) that mirrors p's value: d=1 iff p=1.
func derivedVarTask(t *testing.T) *task.TaskModel {
	t.Helper()
	vars := []task.Variable{
		{Name: "p", DomainSize: 2, AxiomLayer: -1},
		{Name: "d", DomainSize: 2, AxiomLayer: 0},
	}
	axioms := []task.Axiom{
		{PrePosts: []task.PrePost{{
			Var:  1,
			Pre:  task.NoPreconditionValue,
			Post: 1,
			Cond: []task.Fact{{Var: 0, Val: 1}},
		}}},
	}
	tm, err := task.NewTaskModel(vars, nil, axioms, []int32{0, 0}, nil)
	require.NoError(t, err)
	return tm
}

func TestAxiomFixedPoint(t *testing.T) {
	tm := derivedVarTask(t)

	values := []int32{1, 0}
	tm.EvaluateAxioms(values)
	require.Equal(t, int32(1), values[1], "d should become 1 when p=1")

	// Idempotence: re-evaluating an already-closed state is a no-op.
	before := append([]int32(nil), values...)
	tm.EvaluateAxioms(values)
	require.Equal(t, before, values)
}

func TestAxiomDefaultOnNegationByFailure(t *testing.T) {
	tm := derivedVarTask(t)

	values := []int32{0, 1} // d starts "wrongly" set; no axiom fires since p=0
	tm.EvaluateAxioms(values)
	require.Equal(t, int32(0), values[1], "d must fall back to its default value")
}
