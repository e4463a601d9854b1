// Package scheduler time-slices a fixed sequence of search engines, each
// under its own wall-clock budget, the way the original planner's
// portfolio mode ran multiple configurations in one process and reported
// whichever found a plan first.
package scheduler

import (
	"time"

	"github.com/sasplan/fdplanner/planlog"
	"github.com/sasplan/fdplanner/search"
)

// Slot is one (engine, budget) entry in a Portfolio's fixed schedule. Name
// identifies the slot in logs; the same Engine value may appear in more
// than one Slot to give it a second, larger budget later in the schedule.
type Slot struct {
	Name   string
	Engine Engine
	Budget time.Duration
}

// Result is what a Portfolio run produced: whether any slot solved the
// task, the winning slot's name and plan, and its expansion/generation
// counts when the winning engine reports them.
type Result struct {
	Solved    bool
	Winner    string
	Plan      []int32
	Expanded  int64
	Generated int64
	Elapsed   time.Duration
}

// Portfolio runs a fixed sequence of Slots in order. Each slot's engine is
// stepped until it reports Solved, reports Failed, or exhausts its Budget;
// a budget-exhausted engine is simply left alone (suspended, never killed
// mid-step, per §9's cooperative-cancellation note) and the portfolio
// moves to the next slot without revisiting it — matching the
// two-engine/two-budget seed scenario exactly.
type Portfolio struct {
	slots []Slot
	log   *planlog.Logger
}

// NewPortfolio builds a Portfolio over slots, run in the given order. log
// may be nil, in which case milestones are silently dropped.
func NewPortfolio(log *planlog.Logger, slots ...Slot) *Portfolio {
	return &Portfolio{slots: slots, log: log}
}

func (p *Portfolio) milestone(msg string, keysAndValues ...interface{}) {
	if p.log != nil {
		p.log.Timed().Infow(msg, keysAndValues...)
	}
}

// Run executes every slot in order and returns the first solution found,
// or an unsolved Result once every slot has failed or exhausted its
// budget.
func (p *Portfolio) Run() Result {
	var totalElapsed time.Duration
	for _, slot := range p.slots {
		slotElapsed, status := p.runSlot(slot)
		totalElapsed = saturatingAdd(totalElapsed, slotElapsed)

		switch status {
		case statusSolved:
			result := Result{
				Solved:  true,
				Winner:  slot.Name,
				Plan:    slot.Engine.Plan(),
				Elapsed: totalElapsed,
			}
			if stats, ok := slot.Engine.(StatsEngine); ok {
				result.Expanded = stats.Expanded()
				result.Generated = stats.Generated()
			}
			p.milestone("engine solved",
				"slot", slot.Name,
				"plan_length", len(result.Plan),
				"expanded", result.Expanded,
				"generated", result.Generated)
			return result
		case statusFailed:
			p.milestone("engine failed", "slot", slot.Name)
		case statusSuspended:
			p.milestone("engine suspended, budget exhausted",
				"slot", slot.Name, "budget", slot.Budget)
		}
	}
	return Result{Solved: false, Elapsed: totalElapsed}
}

type slotOutcome int

const (
	statusFailed slotOutcome = iota
	statusSolved
	statusSuspended
)

// runSlot steps slot.Engine until it solves, fails, or its budget runs
// out, returning the wall-clock time actually spent and which of the three
// happened.
func (p *Portfolio) runSlot(slot Slot) (time.Duration, slotOutcome) {
	budget := NewBudget(slot.Budget)
	start := time.Now()
	for {
		switch slot.Engine.Step() {
		case search.Solved:
			return time.Since(start), statusSolved
		case search.Failed:
			return time.Since(start), statusFailed
		}
		if budget.Expired() {
			return time.Since(start), statusSuspended
		}
	}
}
