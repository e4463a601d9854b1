package causalgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/task"
)

// scenario2Task builds the CEA example from spec.md §8 scenario 2:
// a in {0,1,2}, b in {0,1}; o1: a:0->1, o2: a:1->2 prevail b=1, o3: b:0->1.
func scenario2Task(t *testing.T) *task.TaskModel {
	t.Helper()
	vars := []task.Variable{
		{Name: "a", DomainSize: 3, AxiomLayer: -1},
		{Name: "b", DomainSize: 2, AxiomLayer: -1},
	}
	ops := []task.Operator{
		{Name: "o1", Cost: 1, PrePosts: []task.PrePost{{Var: 0, Pre: 0, Post: 1}}},
		{Name: "o2", Cost: 1, PrePosts: []task.PrePost{
			{Var: 0, Pre: 1, Post: 2},
			{Var: 1, Pre: 1, Post: 1},
		}},
		{Name: "o3", Cost: 1, PrePosts: []task.PrePost{{Var: 1, Pre: 0, Post: 1}}},
	}
	goal := []task.Fact{{Var: 0, Val: 2}}
	tm, err := task.NewTaskModel(vars, ops, nil, []int32{0, 0}, goal)
	require.NoError(t, err)
	return tm
}

func TestDTGHasLocalParentForPrevailCondition(t *testing.T) {
	tm := scenario2Task(t)
	dtgs := causalgraph.BuildAll(tm)

	aDTG := dtgs[0]
	require.Equal(t, 1, aDTG.NumLocalParents(), "a's DTG should depend on b via o2's prevail")
	require.Equal(t, int32(1), aDTG.LocalParent(0))

	// Arc a:1->2 should carry a label whose local condition is b=1.
	found := false
	for _, arc := range aDTG.Arcs[1] {
		if arc.To != 2 {
			continue
		}
		for _, lbl := range arc.Labels {
			for _, c := range lbl.LocalConditions {
				if c.Var == 1 && c.Val == 1 {
					found = true
				}
			}
		}
	}
	require.True(t, found)
}

func TestCausalGraphLegacyArcs(t *testing.T) {
	tm := scenario2Task(t)
	cg := causalgraph.Build(tm)

	// b -> a is a legacy arc (o2's prevail b=1 is a precondition, and o2
	// writes a).
	require.True(t, cg.IsLegacyArc(1, 0))
	require.Contains(t, cg.Successors(1), int32(0))
}
