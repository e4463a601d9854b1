package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/scheduler"
	"github.com/sasplan/fdplanner/search"
)

// fakeEngine drives a scripted sequence of statuses for Portfolio tests,
// without needing a real task/successor-generator/heuristic stack.
type fakeEngine struct {
	steps     []search.Status
	pos       int
	plan      []int32
	expanded  int64
	generated int64
}

func (f *fakeEngine) Step() search.Status {
	if f.pos >= len(f.steps) {
		return search.InProgress
	}
	s := f.steps[f.pos]
	f.pos++
	return s
}

func (f *fakeEngine) Status() search.Status {
	if f.pos == 0 {
		return search.InProgress
	}
	return f.steps[f.pos-1]
}

func (f *fakeEngine) Plan() []int32        { return f.plan }
func (f *fakeEngine) Expanded() int64      { return f.expanded }
func (f *fakeEngine) Generated() int64     { return f.generated }

func TestPortfolioDropsFailedEngineAndReportsWinner(t *testing.T) {
	failing := &fakeEngine{steps: []search.Status{search.Failed}}
	solving := &fakeEngine{
		steps:     []search.Status{search.InProgress, search.Solved},
		plan:      []int32{2, 0, 1},
		expanded:  42,
		generated: 99,
	}
	p := scheduler.NewPortfolio(nil,
		scheduler.Slot{Name: "E1", Engine: failing, Budget: time.Second},
		scheduler.Slot{Name: "E2", Engine: solving, Budget: 10 * time.Second},
	)

	result := p.Run()
	require.True(t, result.Solved)
	require.Equal(t, "E2", result.Winner)
	require.Equal(t, []int32{2, 0, 1}, result.Plan)
	require.Equal(t, int64(42), result.Expanded)
	require.Equal(t, int64(99), result.Generated)
}

func TestPortfolioReportsUnsolvedWhenEveryEngineFails(t *testing.T) {
	e1 := &fakeEngine{steps: []search.Status{search.Failed}}
	e2 := &fakeEngine{steps: []search.Status{search.Failed}}
	p := scheduler.NewPortfolio(nil,
		scheduler.Slot{Name: "E1", Engine: e1, Budget: time.Second},
		scheduler.Slot{Name: "E2", Engine: e2, Budget: time.Second},
	)

	result := p.Run()
	require.False(t, result.Solved)
	require.Nil(t, result.Plan)
}

func TestPortfolioSuspendsOnExhaustedBudgetAndMovesOn(t *testing.T) {
	stuck := &fakeEngine{} // always InProgress: Step returns InProgress forever
	solving := &fakeEngine{steps: []search.Status{search.Solved}, plan: []int32{0}}
	p := scheduler.NewPortfolio(nil,
		scheduler.Slot{Name: "stuck", Engine: stuck, Budget: time.Millisecond},
		scheduler.Slot{Name: "solver", Engine: solving, Budget: time.Second},
	)

	result := p.Run()
	require.True(t, result.Solved)
	require.Equal(t, "solver", result.Winner)
}
