package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/search"
	"github.com/sasplan/fdplanner/succgen"
)

func TestIterativeGoalSearchFindsUniquePlan(t *testing.T) {
	tm := sequentialTask(t)
	gen := succgen.Build(tm)

	s := search.NewIterativeGoalSearch(tm, gen, 0)

	status := search.InProgress
	for i := 0; i < 20 && status == search.InProgress; i++ {
		status = s.Step()
	}
	require.Equal(t, search.Solved, status)
	require.Equal(t, []int32{0, 1}, s.Plan())
}

func TestIterativeGoalSearchUnsolvableTaskFails(t *testing.T) {
	tm := sequentialTask(t)
	tm.Operators = tm.Operators[:1] // drop o2: the goal on y is now unreachable
	gen := succgen.Build(tm)

	s := search.NewIterativeGoalSearch(tm, gen, 0)

	status := search.InProgress
	for i := 0; i < 200 && status == search.InProgress; i++ {
		status = s.Step()
	}
	require.Equal(t, search.Failed, status)
}
