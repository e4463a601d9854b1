package relax

// HAdd computes the h_add heuristic value of values: the sum-aggregated
// relaxed cost to the goal, saturating at MaxCostValue.
// Returns MaxCostValue if the goal is unreachable (dead end).
func HAdd(m *Model, values []int32) int64 {
	res := run(m, values, AggregateAdd)
	return aggregateGoal(m, res, AggregateAdd)
}
