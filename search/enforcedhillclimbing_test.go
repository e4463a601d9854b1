package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/search"
	"github.com/sasplan/fdplanner/succgen"
)

func TestEnforcedHillClimbingFindsUniquePlan(t *testing.T) {
	tm := sequentialTask(t)
	gen := succgen.Build(tm)
	dtgs := causalgraph.BuildAll(tm)

	e := search.NewEnforcedHillClimbing(tm, gen, dtgs)

	status := search.InProgress
	for i := 0; i < 20 && status == search.InProgress; i++ {
		status = e.Step()
	}
	require.Equal(t, search.Solved, status)
	require.Equal(t, []int32{0, 1}, e.Plan())
}

func TestEnforcedHillClimbingUnsolvableTaskFails(t *testing.T) {
	tm := sequentialTask(t)
	tm.Operators = tm.Operators[:1] // drop o2: the goal on y is now unreachable
	gen := succgen.Build(tm)
	dtgs := causalgraph.BuildAll(tm)

	e := search.NewEnforcedHillClimbing(tm, gen, dtgs)

	status := search.InProgress
	for i := 0; i < 20 && status == search.InProgress; i++ {
		status = e.Step()
	}
	require.Equal(t, search.Failed, status)
}
