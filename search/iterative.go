package search

import (
	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/openclosed"
	"github.com/sasplan/fdplanner/succgen"
	"github.com/sasplan/fdplanner/task"
)

// unreachableDistance marks a causal-graph variable as unreachable from a
// goal variable during causalGraphDistances' bucket BFS.
const unreachableDistance = int32(1 << 30)

// causalGraphDistances runs an unweighted BFS from source over cg,
// bucketed by distance exactly like a Dijkstra pass on unit edge weights —
// the same bucket-queue shape as openclosed's own priority buckets,
// chosen here because the causal graph
// has at most len(tm.Variables) distinct distances.
func causalGraphDistances(cg *causalgraph.Graph, source int32) []int32 {
	n := cg.NumVars()
	dist := make([]int32, n)
	for i := range dist {
		dist[i] = unreachableDistance
	}
	reached := make([]bool, n)
	buckets := make([][]int32, n+1)
	buckets[0] = append(buckets[0], source)
	for d := 0; d <= n; d++ {
		for len(buckets[d]) > 0 {
			v := buckets[d][len(buckets[d])-1]
			buckets[d] = buckets[d][:len(buckets[d])-1]
			if reached[v] {
				continue
			}
			reached[v] = true
			dist[v] = int32(d)
			if d+1 <= n {
				buckets[d+1] = append(buckets[d+1], cg.Successors(v)...)
			}
		}
	}
	return dist
}

// goalActionCost estimates how relevant an operator is to reaching one
// goal fact: the minimum causal-graph distance, from the goal's variable,
// over every variable the operator has a pre-post pair on. A small value
// means the operator touches a variable close to the goal in the causal
// graph; costLimit below gates search on this estimate so early layers
// only explore obviously-relevant actions.
func goalActionCost(goalDistances []int32, op *task.Operator) int32 {
	cost := unreachableDistance
	for _, pp := range op.PrePosts {
		if d := goalDistances[pp.Var]; d < cost {
			cost = d
		}
	}
	return cost
}

// uniformCostSearcher iteratively-deepens a uniform-cost search toward one
// goal fact, widening an action-cost limit (costLimit) one layer at a
// time. The search keeps every previously-solved goal fact as a standing
// constraint (through solved_old_goals) until the deepening is forced to
// relax that constraint (mayUndoGoal) as a last resort before failing
// outright — letting the engine above it retry a goal that undoes an
// earlier one rather than getting stuck forever.
type uniformCostSearcher struct {
	tm       *task.TaskModel
	gen      *succgen.Generator
	registry *task.StateRegistry

	goals     []task.Fact // goals[0] is the new goal; goals[1:] are already-solved goals
	newGoalID int
	initial   task.StateID

	open   *openclosed.BucketedOpenList
	closed *openclosed.ClosedList

	mayUndoGoal bool
	costLimit   int32
	pathCost    int32
	diameter    int32

	current     task.StateID
	predecessor task.StateID
	currentOp   int32

	goalDistances []int32
}

const (
	ucsFailed = iota
	ucsSolved
	ucsInProgress
)

func newUniformCostSearcher(tm *task.TaskModel, gen *succgen.Generator, registry *task.StateRegistry,
	goalDistances [][]int32, diameter int32, initial task.StateID, solvedGoals []bool, newGoal int) *uniformCostSearcher {

	goals := make([]task.Fact, 0, len(solvedGoals))
	goals = append(goals, tm.Goal[newGoal])
	for i, solved := range solvedGoals {
		if solved {
			goals = append(goals, tm.Goal[i])
		}
	}

	u := &uniformCostSearcher{
		tm:            tm,
		gen:           gen,
		registry:      registry,
		goals:         goals,
		newGoalID:     newGoal,
		initial:       initial,
		open:          openclosed.NewBucketedOpenList(),
		closed:        openclosed.NewClosedList(),
		diameter:      diameter,
		goalDistances: goalDistances[newGoal],
		current:       initial,
		currentOp:     openclosed.NoOperator,
	}
	return u
}

// step advances this searcher by one state and returns one of the ucs*
// constants. Mirrors the grounding source's UniformCostSearcher::search_step.
func (u *uniformCostSearcher) step() int {
	if !u.closed.Contains(u.current) {
		if u.currentOp == openclosed.NoOperator {
			u.closed.InsertInitial(u.current)
		} else {
			u.closed.Insert(u.current, openclosed.Edge{Predecessor: u.predecessor, Operator: u.currentOp})
		}

		values := u.registry.Lookup(u.current).Values()
		solvedOldGoals := true
		for _, g := range u.goals[1:] {
			if values[g.Var] != g.Val {
				solvedOldGoals = false
				break
			}
		}

		if solvedOldGoals || u.mayUndoGoal {
			if solvedOldGoals && values[u.goals[0].Var] == u.goals[0].Val {
				return ucsSolved
			}

			for _, opID := range u.gen.ApplicableOperators(values).ToArray() {
				op := &u.tm.Operators[opID]
				if cost := goalActionCost(u.goalDistances, op); cost <= u.costLimit {
					u.open.Push(int(u.pathCost+cost), openclosed.Edge{Predecessor: u.current, Operator: int32(opID)})
				}
			}
		}
	}

	if u.open.Empty() {
		if u.costLimit == u.diameter {
			if !u.mayUndoGoal {
				u.mayUndoGoal = true
				u.costLimit = -1
			} else {
				return ucsFailed
			}
		}
		u.costLimit++
		u.closed = openclosed.NewClosedList()
		u.pathCost = 0
		u.currentOp = openclosed.NoOperator
		u.current = u.initial
		return ucsInProgress
	}

	e, _ := u.open.Pop()
	u.pathCost = int32(e.Priority)
	u.predecessor = e.Edge.Predecessor
	u.currentOp = e.Edge.Operator
	predValues := u.registry.Lookup(e.Edge.Predecessor).Values()
	childValues := u.tm.Apply(&u.tm.Operators[e.Edge.Operator], predValues)
	u.current = u.registry.Intern(childValues)
	return ucsInProgress
}

func (u *uniformCostSearcher) extractPlan() []int32 { return u.closed.ExtractPlan(u.current) }

// IterativeGoalSearch solves a task's goal facts incrementally: one
// uniformCostSearcher per unsolved goal fact runs concurrently (in the
// cooperative, one-state-at-a-time sense — round-robin across Step calls,
// not actual concurrency), and as soon as any of them solves its fact the
// engine adopts that searcher's final state as the new starting point for
// every remaining goal and restarts searchers for them. It gives up once
// every live searcher reports failure, or once the total size of every
// searcher's closed list would exceed closedStatesLimit.
type IterativeGoalSearch struct {
	tm       *task.TaskModel
	gen      *succgen.Generator
	registry *task.StateRegistry

	cg            *causalgraph.Graph
	goalDistances [][]int32
	diameter      int32

	currentState   task.StateID
	solvedGoals    []bool
	numGoalsSolved int
	searchers      []*uniformCostSearcher

	plan   []int32
	status Status

	closedStatesLimit int
}

// NewIterativeGoalSearch builds an engine for tm, bounding the combined
// closed-list size across all live searchers by the number of states that
// fit in memLimitMB megabytes (matching the grounding source's
// mem_limit*1048576/state_size budget; pass 0 for no budget).
func NewIterativeGoalSearch(tm *task.TaskModel, gen *succgen.Generator, memLimitMB int) *IterativeGoalSearch {
	registry := task.NewStateRegistry(tm)
	init := registry.Intern(tm.InitialValues)

	cg := causalgraph.Build(tm)
	goalDistances := make([][]int32, len(tm.Goal))
	var diameter int32
	for i, g := range tm.Goal {
		d := causalGraphDistances(cg, g.Var)
		goalDistances[i] = d
		for _, v := range d {
			if v != unreachableDistance && v > diameter {
				diameter = v
			}
		}
	}

	limit := 0
	if memLimitMB > 0 {
		stateSize := 4 * len(tm.Variables)
		limit = memLimitMB * 1_048_576 / stateSize
	}

	s := &IterativeGoalSearch{
		tm:                tm,
		gen:               gen,
		registry:          registry,
		cg:                cg,
		goalDistances:     goalDistances,
		diameter:          diameter,
		currentState:      init,
		solvedGoals:       make([]bool, len(tm.Goal)),
		status:            InProgress,
		closedStatesLimit: limit,
	}
	s.initializeSearchers()
	return s
}

func (s *IterativeGoalSearch) initializeSearchers() {
	s.searchers = s.searchers[:0]
	for i := range s.tm.Goal {
		if !s.solvedGoals[i] {
			s.searchers = append(s.searchers, newUniformCostSearcher(
				s.tm, s.gen, s.registry, s.goalDistances, s.diameter, s.currentState, s.solvedGoals, i))
		}
	}
}

// Status reports the engine's current outcome.
func (s *IterativeGoalSearch) Status() Status { return s.status }

// Plan returns the concatenated operator sequence across every goal's
// solved searcher, in the order goals were solved. Valid only once
// Status() == Solved.
func (s *IterativeGoalSearch) Plan() []int32 { return s.plan }

// Step runs search_step on each live searcher in turn, handling the first
// Solved or the last Failed it encounters exactly like the grounding
// source's step(): a Solved searcher ends the call immediately (after
// folding its result into the engine and possibly reinitializing the
// round); a Failed searcher is dropped, and the engine only fails once
// every searcher has been dropped.
func (s *IterativeGoalSearch) Step() Status {
	if s.status != InProgress {
		return s.status
	}

	i := 0
	for i < len(s.searchers) {
		u := s.searchers[i]
		switch u.step() {
		case ucsInProgress:
			i++
		case ucsFailed:
			s.searchers = append(s.searchers[:i], s.searchers[i+1:]...)
			if len(s.searchers) == 0 {
				s.status = Failed
				return s.status
			}
		case ucsSolved:
			s.solvedGoals[u.newGoalID] = true
			s.currentState = u.current
			s.plan = append(s.plan, u.extractPlan()...)
			s.numGoalsSolved++
			if s.numGoalsSolved == len(s.tm.Goal) {
				s.status = Solved
				return s.status
			}
			s.initializeSearchers()
			return s.status
		}
	}

	if s.closedStatesLimit > 0 {
		total := 0
		for _, u := range s.searchers {
			total += u.closed.Len()
		}
		if total > s.closedStatesLimit {
			s.status = Failed
		}
	}
	return s.status
}
