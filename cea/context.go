package cea

import (
	"container/heap"

	"github.com/sasplan/fdplanner/causalgraph"
	"github.com/sasplan/fdplanner/task"
)

// Result is one heuristic evaluation's outcome.
type Result struct {
	Value     int64
	Preferred []int32 // operator ids, deduplicated
}

// Context is the per-evaluation mutable state of one context-enhanced
// additive heuristic computation: one local problem per variable plus the
// dedicated goal problem, and the shared priority heap driving all of them
// at once. A fresh Context is built for every state evaluated; nothing here
// is shared across evaluations or across heuristic instances.
type Context struct {
	tm   *task.TaskModel
	dtgs []*causalgraph.DTG

	problems map[int32]map[int32]*localNode // [variable][value], goalVar for the goal problem
	pq       heapPQ
}

// NewContext builds the (state-independent) scaffolding for repeated
// evaluation against one task's DTGs. dtgs is normally causalgraph.BuildAll's
// output for tm.
func NewContext(tm *task.TaskModel, dtgs []*causalgraph.DTG) *Context {
	return &Context{tm: tm, dtgs: dtgs}
}

// Evaluate runs one fresh context-enhanced additive heuristic pass from
// values, returning the aggregate goal-distance estimate and the preferred
// operators on the relaxed path — or (MaxCostValue, nil) at a dead end.
func (c *Context) Evaluate(values []int32) Result {
	c.problems = make(map[int32]map[int32]*localNode)
	c.pq = make(heapPQ, 0, 64)
	heap.Init(&c.pq)

	for v := range c.dtgs {
		c.seedLocalProblem(int32(v), values)
	}
	c.seedGoalProblem(values)

	for c.pq.Len() > 0 {
		item := heap.Pop(&c.pq).(*heapEntry)
		n := c.node(item.variable, item.value)
		if n.expanded {
			continue
		}
		if item.cost > n.cost {
			continue // stale lazy-decrease-key entry
		}
		n.expanded = true
		c.notifyWaiters(n, item.cost)
	}

	sink := c.node(goalVar, 1)
	if !sink.expanded {
		return Result{Value: MaxCostValue}
	}

	preferred := c.markPreferred(values)
	return Result{Value: sink.cost, Preferred: preferred}
}

// node returns the node for (variable, value), creating it (cost=+inf) on
// first touch.
func (c *Context) node(variable, value int32) *localNode {
	vals, ok := c.problems[variable]
	if !ok {
		vals = make(map[int32]*localNode)
		c.problems[variable] = vals
	}
	n, ok := vals[value]
	if !ok {
		n = &localNode{cost: MaxCostValue}
		vals[value] = n
	}
	return n
}

// seedLocalProblem seeds variable v's local problem at cost 0 for its
// current value and builds one transition per outgoing DTG arc/label,
// registering it as a waiter on every one of its dependencies (its own
// from-value plus every cross-variable condition).
func (c *Context) seedLocalProblem(v int32, values []int32) {
	src := c.node(v, values[v])
	src.cost = 0
	heap.Push(&c.pq, &heapEntry{variable: v, value: values[v], cost: 0})

	dtg := c.dtgs[v]
	for from, arcs := range dtg.Arcs {
		for _, arc := range arcs {
			for _, lbl := range arc.Labels {
				t := &transition{
					ownerVar:   v,
					fromVal:    int32(from),
					toVal:      arc.To,
					opID:       lbl.OperatorID,
					baseCost:   lbl.Cost,
					conditions: lbl.LocalConditions,
					unreached:  int32(1 + len(lbl.LocalConditions)),
				}
				c.node(v, int32(from)).waitingOn = append(c.node(v, int32(from)).waitingOn, t)
				for _, cond := range lbl.LocalConditions {
					c.node(cond.Var, cond.Val).waitingOn = append(c.node(cond.Var, cond.Val).waitingOn, t)
				}
			}
		}
	}
}

// seedGoalProblem builds the dedicated two-node goal problem: node 0 (the
// source) is immediately expanded at cost 0, and its single transition to
// node 1 (the sink) depends on every goal fact being reached in its own
// variable's local problem.
func (c *Context) seedGoalProblem(values []int32) {
	src := c.node(goalVar, 0)
	src.cost = 0
	heap.Push(&c.pq, &heapEntry{variable: goalVar, value: 0, cost: 0})

	t := &transition{
		ownerVar:   goalVar,
		fromVal:    0,
		toVal:      1,
		opID:       -1,
		baseCost:   0,
		conditions: c.tm.Goal,
		unreached:  int32(1 + len(c.tm.Goal)),
	}
	c.node(goalVar, 0).waitingOn = append(c.node(goalVar, 0).waitingOn, t)
	for _, g := range c.tm.Goal {
		c.node(g.Var, g.Val).waitingOn = append(c.node(g.Var, g.Val).waitingOn, t)
	}
}

// notifyWaiters resolves one more dependency for every transition waiting
// on n, pushing each transition's target once its last dependency resolves.
func (c *Context) notifyWaiters(n *localNode, cost int64) {
	for _, t := range n.waitingOn {
		t.extra += cost
		t.unreached--
		if t.unreached > 0 {
			continue
		}
		target := c.node(t.ownerVar, t.toVal)
		total := clampCost(t.extra + int64(t.baseCost))
		if total < target.cost {
			target.cost = total
			target.reachedBy = t
			heap.Push(&c.pq, &heapEntry{variable: t.ownerVar, value: t.toVal, cost: total})
		}
	}
}

func clampCost(v int64) int64 {
	if v >= MaxCostValue {
		return MaxCostValue
	}
	return v
}
