package relax

// Options configures relax heuristic computation.
type Options struct {
	// StrictFFNoPreconditions, when true (the default), makes HFF skip
	// reconcile; when false, HFF runs reconcile, a second pass over
	// precondition-less unary operators, before extracting the relaxed
	// plan. run already seeds every precondition-less unary operator at its
	// base cost before the first pop, so reconcile finds no cost to lower
	// and both settings give the same result.
	StrictFFNoPreconditions bool
}

// DefaultOptions returns the default Options: StrictFFNoPreconditions set.
func DefaultOptions() Options {
	return Options{StrictFFNoPreconditions: true}
}

// FFResult is h_ff's output: the heuristic value, the extracted relaxed
// plan's real (non-axiom) operator ids, and the preferred-operator subset.
type FFResult struct {
	Value      int64
	RelaxedOps []int32 // real operator ids in the extracted relaxed plan
	Preferred  []int32 // subset of RelaxedOps immediately applicable in values
}

// HFF computes the h_ff heuristic: an h_add-style relaxation pass, then an
// iterative (not recursive backward extraction of the
// relaxed plan from reached_by chains, followed by preferred-operator
// marking.
func HFF(m *Model, values []int32, opts Options) FFResult {
	res := run(m, values, AggregateAdd)
	value := aggregateGoal(m, res, AggregateAdd)
	if value >= MaxCostValue {
		return FFResult{Value: MaxCostValue}
	}

	if !opts.StrictFFNoPreconditions {
		reconcile(m, res)
	}

	extracted := extractRelaxedPlan(m, res)

	result := FFResult{Value: value}
	seenOp := make(map[int32]bool)
	for _, opIdx := range extracted {
		uop := m.Ops[opIdx]
		if uop.IsAxiom || seenOp[uop.OperatorID] {
			continue
		}
		seenOp[uop.OperatorID] = true
		result.RelaxedOps = append(result.RelaxedOps, uop.OperatorID)

		if isPreferred(m, res, uop) {
			result.Preferred = append(result.Preferred, uop.OperatorID)
		}
	}
	return result
}

// extractRelaxedPlan walks back from every goal proposition via
// ReachedBy chains, using an explicit worklist (a stack) rather than
// recursion guidance for systems-language ports. Returns
// the set of unary-operator indices touched, each appearing once.
func extractRelaxedPlan(m *Model, res *Result) []int32 {
	visitedProp := make([]bool, m.NumProps())
	visitedOp := make([]bool, len(m.Ops))
	var order []int32

	var stack []int32
	for _, f := range m.TM.Goal {
		stack = append(stack, m.PropID(f))
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visitedProp[p] {
			continue
		}
		visitedProp[p] = true

		opIdx := res.ReachedBy[p]
		if opIdx < 0 {
			continue // already true in the initial relaxed state
		}
		if visitedOp[opIdx] {
			continue
		}
		visitedOp[opIdx] = true
		order = append(order, opIdx)

		uop := m.Ops[opIdx]
		for _, pre := range uop.Precondition {
			stack = append(stack, m.PropID(pre))
		}
	}
	return order
}

// reconcile re-seeds precondition-less unary operators once more, in case
// a cheaper one should have displaced an already-closed proposition's cost
// — an explicit alternative to the original's approximate behavior.
func reconcile(m *Model, res *Result) {
	for i, uop := range m.Ops {
		if len(uop.Precondition) != 0 {
			continue
		}
		ep := m.PropID(uop.Effect)
		if int64(uop.Cost) < res.PropCost[ep] {
			res.PropCost[ep] = int64(uop.Cost)
			res.ReachedBy[ep] = int32(i)
		}
	}
}

// isPreferred reports whether uop's achieved cost equals its base cost —
// i.e. every one of its preconditions was already true in the initial
// relaxed state (propCost 0) preferred-operator rule.
func isPreferred(m *Model, res *Result, uop *UnaryOperator) bool {
	var sum int64
	for _, pre := range uop.Precondition {
		sum = clampCost(sum + res.PropCost[m.PropID(pre)])
	}
	return sum == 0
}
