package relax

// HMax computes the h_max heuristic value of values: the max-aggregated
// relaxed cost to the goal. Returns MaxCostValue if the goal is
// unreachable in the relaxed task (a dead end under this heuristic).
func HMax(m *Model, values []int32) int64 {
	res := run(m, values, AggregateMax)
	return aggregateGoal(m, res, AggregateMax)
}

func aggregateGoal(m *Model, res *Result, agg Aggregation) int64 {
	var total int64
	for _, f := range m.TM.Goal {
		c := res.PropCost[m.PropID(f)]
		switch agg {
		case AggregateMax:
			if c > total {
				total = c
			}
		case AggregateAdd:
			total = clampCost(total + c)
		}
		if c >= MaxCostValue {
			return MaxCostValue
		}
	}
	return total
}
