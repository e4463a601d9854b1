package search

import (
	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/cea"
	"github.com/sasplan/fdplanner/openclosed"
	"github.com/sasplan/fdplanner/relax"
	"github.com/sasplan/fdplanner/succgen"
	"github.com/sasplan/fdplanner/task"
)

type ehcPhase int

const (
	ehcHelpful ehcPhase = iota
	ehcAll
)

// EnforcedHillClimbing repeatedly does a breadth-first search, rooted at
// the best state found so far, for any state that strictly improves the
// cea heuristic — the first such state found (not necessarily a goal
// state) becomes the new root, and the search restarts from there. Each
// round first restricts expansion to cea's own preferred operators;
// if that round exhausts without improvement, it falls back to a second
// round expanding every applicable operator before giving up.
//
// Unlike the original engine this is grounded on, a helpful-actions round
// here genuinely restricts to the preferred operator set for its entire
// breadth-first pass: the original recomputed the preferred set on every
// popped state but then discarded it in favor of the full applicable-ops
// list even during the "helpful" phase, silently making that phase
// identical to the fallback phase. That behavior contradicts what
// "restricted to preferred operators first" is supposed to mean, so it is
// not reproduced here.
type EnforcedHillClimbing struct {
	tm  *task.TaskModel
	gen *succgen.Generator
	ctx *cea.Context

	registry *task.StateRegistry

	bestH     int64
	bestState task.StateID
	plan      []int32

	phase       ehcPhase
	queue       []task.StateID
	roundClosed *openclosed.ClosedList

	expanded, generated int64
	status              Status
}

// NewEnforcedHillClimbing builds a climber rooted at tm's initial state.
func NewEnforcedHillClimbing(tm *task.TaskModel, gen *succgen.Generator, dtgs []*causalgraph.DTG) *EnforcedHillClimbing {
	registry := task.NewStateRegistry(tm)
	init := registry.Intern(tm.InitialValues)
	e := &EnforcedHillClimbing{
		tm:        tm,
		gen:       gen,
		ctx:       cea.NewContext(tm, dtgs),
		registry:  registry,
		bestH:     relax.MaxCostValue,
		bestState: init,
		status:    InProgress,
	}
	e.startRound(ehcHelpful)
	return e
}

func (e *EnforcedHillClimbing) startRound(phase ehcPhase) {
	e.phase = phase
	e.roundClosed = openclosed.NewClosedList()
	e.roundClosed.InsertInitial(e.bestState)
	e.queue = []task.StateID{e.bestState}
}

// Status reports the engine's current outcome.
func (e *EnforcedHillClimbing) Status() Status { return e.status }

// Plan returns the operator sequence from init to the goal state found,
// concatenated across however many successful climb rounds it took. Valid
// only once Status() == Solved.
func (e *EnforcedHillClimbing) Plan() []int32 { return e.plan }

func (e *EnforcedHillClimbing) Expanded() int64  { return e.expanded }
func (e *EnforcedHillClimbing) Generated() int64 { return e.generated }

// Step advances the current round's breadth-first search by one popped
// state, switching rounds or declaring Failed/Solved as appropriate.
func (e *EnforcedHillClimbing) Step() Status {
	if e.status != InProgress {
		return e.status
	}

	if len(e.queue) == 0 {
		if e.phase == ehcHelpful {
			e.startRound(ehcAll)
			return e.status
		}
		e.status = Failed
		return e.status
	}

	current := e.queue[0]
	e.queue = e.queue[1:]
	values := e.registry.Lookup(current).Values()

	result := e.ctx.Evaluate(values)
	e.expanded++

	if result.Value < e.bestH {
		e.bestH = result.Value
		e.plan = append(e.plan, e.roundClosed.ExtractPlan(current)...)
		e.bestState = current
		if e.bestH == 0 {
			e.status = Solved
			return e.status
		}
		e.startRound(ehcHelpful)
		return e.status
	}

	if result.Value >= relax.MaxCostValue {
		return e.status // dead end under this heuristic; don't expand it further
	}

	var opIDs []int32
	if e.phase == ehcHelpful {
		opIDs = result.Preferred
	} else {
		for _, id := range e.gen.ApplicableOperators(values).ToArray() {
			opIDs = append(opIDs, int32(id))
		}
	}

	for _, opID := range opIDs {
		childValues := e.tm.Apply(&e.tm.Operators[opID], values)
		child := e.registry.Intern(childValues)
		e.generated++
		if e.roundClosed.Contains(child) {
			continue
		}
		e.roundClosed.Insert(child, openclosed.Edge{Predecessor: current, Operator: opID})
		e.queue = append(e.queue, child)
	}

	return e.status
}
