package mas

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sasplan/fdplanner/task"
)

// ReduceLabels groups operators into equivalence classes by the
// projection of their (cost, sorted preconditions, sorted effects) onto
// vars — the union of the two factors about to be merged. Two operators
// with identical projections are interchangeable for every transition
// this merge will ever compose, so collapsing them first keeps the
// composed transition set from carrying duplicate labels that only
// differ outside the variables either factor can see.
//
// Safe only when the two merging factors' variable sets are disjoint —
// callers must not call this across a shared variable.
func ReduceLabels(tm *task.TaskModel, vars []int32) (labelOf []int32, labelCost []int64) {
	inVars := make(map[int32]bool, len(vars))
	for _, v := range vars {
		inVars[v] = true
	}

	labelOf = make([]int32, len(tm.Operators))
	labelCost = nil
	classOf := make(map[string]int32)

	for opIdx := range tm.Operators {
		op := &tm.Operators[opIdx]
		key := projectionKey(op, inVars)
		id, ok := classOf[key]
		if !ok {
			id = int32(len(labelCost))
			classOf[key] = id
			labelCost = append(labelCost, int64(op.Cost))
		} else if int64(op.Cost) < labelCost[id] {
			labelCost[id] = int64(op.Cost)
		}
		labelOf[opIdx] = id
	}
	return labelOf, labelCost
}

func projectionKey(op *task.Operator, inVars map[int32]bool) string {
	var pre, post []task.Fact
	for _, pp := range op.PrePosts {
		if !inVars[pp.Var] {
			continue
		}
		if pp.Pre != task.NoPreconditionValue {
			pre = append(pre, task.Fact{Var: pp.Var, Val: pp.Pre})
		}
		post = append(post, task.Fact{Var: pp.Var, Val: pp.Post})
	}
	sort.Slice(pre, func(i, j int) bool { return pre[i].Var < pre[j].Var })
	sort.Slice(post, func(i, j int) bool { return post[i].Var < post[j].Var })

	var b strings.Builder
	b.WriteString(strconv.Itoa(int(op.Cost)))
	b.WriteByte('|')
	for _, f := range pre {
		b.WriteString(strconv.Itoa(int(f.Var)))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(f.Val)))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, f := range post {
		b.WriteString(strconv.Itoa(int(f.Var)))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(f.Val)))
		b.WriteByte(',')
	}
	return b.String()
}
