package planio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sasplan/fdplanner/task"
)

// WritePlan writes plan (a sequence of operator IDs in execution order)
// to w in the "sas_plan" format: one line per step, the operator's name
// wrapped in parentheses. It does not validate that the plan is
// executable from any particular state — callers that need that
// guarantee should check it before writing, e.g. against the universal
// invariant that replaying the plan from the initial state reaches a
// goal state.
func WritePlan(w io.Writer, tm *task.TaskModel, plan []int32) error {
	bw := bufio.NewWriter(w)
	for _, opID := range plan {
		if _, err := fmt.Fprintf(bw, "(%s)\n", tm.Operators[opID].Name); err != nil {
			return fmt.Errorf("planio: writing plan: %w", err)
		}
	}
	return bw.Flush()
}

// PlanCost sums the cost of every operator in plan, the way the
// original tool reports it alongside the written file.
func PlanCost(tm *task.TaskModel, plan []int32) int32 {
	var total int32
	for _, opID := range plan {
		total += tm.Operators[opID].Cost
	}
	return total
}
