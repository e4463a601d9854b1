package scheduler

import "github.com/sasplan/fdplanner/search"

// Engine is the narrow interface a Portfolio drives: repeatedly call Step
// until it reports search.Solved or search.Failed, then read Plan. All
// three engines in package search (BestFirstSearch, EnforcedHillClimbing,
// IterativeGoalSearch) satisfy it without modification — each already
// advances by roughly one state expansion per Step and owns no blocking
// loop of its own, so the portfolio's round-robin wall-clock accounting is
// entirely external to the engine.
type Engine interface {
	Step() search.Status
	Status() search.Status
	Plan() []int32
}

// StatsEngine is an Engine that additionally reports expansion/generation
// counts for logging. BestFirstSearch and EnforcedHillClimbing implement
// it; IterativeGoalSearch does not track these counters and so only
// satisfies Engine — a Portfolio type-asserts for StatsEngine and omits
// the counts when an engine doesn't provide them.
type StatsEngine interface {
	Engine
	Expanded() int64
	Generated() int64
}
