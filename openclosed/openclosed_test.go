package openclosed_test

import (
	"testing"

	"github.com/sasplan/fdplanner/openclosed"
	"github.com/sasplan/fdplanner/task"
)

func TestBucketedOpenListPopsLowestPriorityFIFOOnTies(t *testing.T) {
	o := openclosed.NewBucketedOpenList()
	o.Push(3, openclosed.Edge{Predecessor: 1, Operator: 10})
	o.Push(1, openclosed.Edge{Predecessor: 2, Operator: 20})
	o.Push(1, openclosed.Edge{Predecessor: 3, Operator: 30})
	o.Push(2, openclosed.Edge{Predecessor: 4, Operator: 40})

	want := []int32{20, 30, 40, 10} // priority 1 (FIFO), then 2, then 3
	for _, w := range want {
		e, ok := o.Pop()
		if !ok {
			t.Fatalf("Pop: list emptied early, expected operator %d", w)
		}
		if e.Edge.Operator != w {
			t.Fatalf("Pop() operator = %d, want %d", e.Edge.Operator, w)
		}
	}
	if _, ok := o.Pop(); ok {
		t.Fatalf("Pop: expected empty list")
	}
}

func TestBucketedOpenListPushBelowLowestAfterAdvancing(t *testing.T) {
	o := openclosed.NewBucketedOpenList()
	o.Push(5, openclosed.Edge{Operator: 1})
	if _, ok := o.Pop(); !ok {
		t.Fatalf("Pop: expected an entry")
	}
	// lowest has advanced past 0..5; pushing at priority 0 must still be
	// found, not skipped because the cursor moved on.
	o.Push(0, openclosed.Edge{Operator: 2})
	e, ok := o.Pop()
	if !ok || e.Edge.Operator != 2 {
		t.Fatalf("Pop() = %+v, ok=%v, want operator 2", e, ok)
	}
}

func TestBucketedOpenListEmptyAndLen(t *testing.T) {
	o := openclosed.NewBucketedOpenList()
	if !o.Empty() || o.Len() != 0 {
		t.Fatalf("new list should be empty")
	}
	o.Push(0, openclosed.Edge{})
	if o.Empty() || o.Len() != 1 {
		t.Fatalf("Len = %d, Empty = %v, want 1, false", o.Len(), o.Empty())
	}
}

func TestClosedListExtractPlanReversesBackToInitialSentinel(t *testing.T) {
	c := openclosed.NewClosedList()
	init := task.StateID(0)
	s1 := task.StateID(1)
	s2 := task.StateID(2)

	c.InsertInitial(init)
	c.Insert(s1, openclosed.Edge{Predecessor: init, Operator: 7})
	c.Insert(s2, openclosed.Edge{Predecessor: s1, Operator: 9})

	got := c.ExtractPlan(s2)
	want := []int32{7, 9}
	if len(got) != len(want) {
		t.Fatalf("ExtractPlan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExtractPlan = %v, want %v", got, want)
		}
	}
}

func TestClosedListExtractPlanAtInitialIsEmpty(t *testing.T) {
	c := openclosed.NewClosedList()
	init := task.StateID(0)
	c.InsertInitial(init)

	got := c.ExtractPlan(init)
	if len(got) != 0 {
		t.Fatalf("ExtractPlan(init) = %v, want empty", got)
	}
}

func TestClosedListContainsAndEquivalence(t *testing.T) {
	c := openclosed.NewClosedList()
	id := task.StateID(5)
	if c.Contains(id) {
		t.Fatalf("fresh closed list should not contain id")
	}
	edge := openclosed.Edge{Predecessor: 1, Operator: 3}
	c.Insert(id, edge)
	if !c.Contains(id) {
		t.Fatalf("Contains = false after Insert")
	}
	got, ok := c.Lookup(id)
	if !ok || got != edge {
		t.Fatalf("Lookup = %+v, %v, want %+v, true", got, ok, edge)
	}
}
