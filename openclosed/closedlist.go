package openclosed

import "github.com/sasplan/fdplanner/task"

// ClosedList maps an interned state to the edge that first reached it.
// Closed-list equivalence holds by construction: a state is inserted
// exactly once, at first generation, and every later lookup returns that
// same edge.
type ClosedList struct {
	entries map[task.StateID]Edge
}

// NewClosedList returns an empty closed list.
func NewClosedList() *ClosedList {
	return &ClosedList{entries: make(map[task.StateID]Edge)}
}

// InsertInitial marks id as the search root: its edge carries NoOperator so
// plan extraction knows to stop there.
func (c *ClosedList) InsertInitial(id task.StateID) {
	c.entries[id] = Edge{Predecessor: id, Operator: NoOperator}
}

// Insert records the edge that first reached id. Callers must check
// Contains first — inserting twice would silently discard the original
// (and shorter, since states are expanded in priority order) reaching edge.
func (c *ClosedList) Insert(id task.StateID, e Edge) {
	c.entries[id] = e
}

// Lookup returns the edge that reached id, if any.
func (c *ClosedList) Lookup(id task.StateID) (Edge, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Contains reports whether id has already been closed.
func (c *ClosedList) Contains(id task.StateID) bool {
	_, ok := c.entries[id]
	return ok
}

// Len returns the number of closed states.
func (c *ClosedList) Len() int { return len(c.entries) }

// ExtractPlan walks backward from goal through reaching edges to the
// initial sentinel, then reverses, producing the operator sequence in
// execution order. goal must already be closed.
func (c *ClosedList) ExtractPlan(goal task.StateID) []int32 {
	var ops []int32
	id := goal
	for {
		e, ok := c.entries[id]
		if !ok || e.Operator == NoOperator {
			break
		}
		ops = append(ops, e.Operator)
		id = e.Predecessor
	}
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}
