// Package relax implements the delete-relaxation heuristics h_max, h_add
// and h_ff over a shared unary-operator model.
//
// A unary operator is built by splitting a concrete operator into one
// unary operator per effect, sharing that operator's full precondition
// list plus the effect's own condition facts (an effect only fires if both
// hold). Axioms contribute unary operators too (tagged IsAxiom, cost 0) so
// that preconditions on derived variables relax correctly.
package relax

import (
	"github.com/sasplan/fdplanner/task"
)

// MaxCostValue is the saturating sentinel used for "infinite" / dead-end
// proposition and heuristic costs. It is defined well below the arithmetic
// maximum so that `x + MaxCostValue` never wraps.
const MaxCostValue int64 = 100_000_000

// UnaryOperator is the single-effect relaxation unit: one operator with N
// effects splits into N unary operators, each keeping the full precondition
// list but writing only one fact.
type UnaryOperator struct {
	Precondition []task.Fact
	Effect       task.Fact
	OperatorID   int32 // index into TaskModel.Operators, or -1 if IsAxiom
	IsAxiom      bool
	Cost         int32
}

// Model is the unary-operator model for one TaskModel: the full list of
// unary operators plus, per proposition, the list of unary operators it is
// a precondition of — a weak back-pointer kept as a plain slice index
// rather than a pointer.
type Model struct {
	TM  *task.TaskModel
	Ops []*UnaryOperator

	// PropID maps a fact to its dense proposition id via propOffset.
	propOffset []int32 // propOffset[v] is the first proposition id for variable v
	numProps   int32

	// preconditionOf[p] lists indices into Ops of every unary operator
	// that has proposition p as one of its preconditions.
	preconditionOf [][]int32
}

// PropID returns the dense proposition id for fact f.
func (m *Model) PropID(f task.Fact) int32 { return m.propOffset[f.Var] + f.Val }

// NumProps returns the total number of (var, val) propositions.
func (m *Model) NumProps() int32 { return m.numProps }

// PreconditionOf returns the unary operators (by index into m.Ops) that
// have proposition p as a precondition.
func (m *Model) PreconditionOf(p int32) []int32 { return m.preconditionOf[p] }

// Build constructs the unary-operator model for tm: split every operator
// effect into its own UnaryOperator, add zero-cost axiom unary operators,
// then remove duplicate and dominated entries: an entry whose precondition
// set is a superset of another's at >= cost is removed.
func Build(tm *task.TaskModel) *Model {
	m := &Model{TM: tm}
	m.propOffset = make([]int32, len(tm.Variables))
	var next int32
	for v := range tm.Variables {
		m.propOffset[v] = next
		next += tm.Variables[v].DomainSize
	}
	m.numProps = next

	var raw []*UnaryOperator
	for opIdx := range tm.Operators {
		op := &tm.Operators[opIdx]
		basePre := op.Preconditions()
		for _, pp := range op.PrePosts {
			if pp.Pre == pp.Post {
				continue // prevail: no effect proposition is produced
			}
			pre := append(append([]task.Fact(nil), basePre...), pp.Cond...)
			raw = append(raw, &UnaryOperator{
				Precondition: dedupFacts(pre),
				Effect:       task.Fact{Var: pp.Var, Val: pp.Post},
				OperatorID:   int32(opIdx),
				Cost:         op.Cost,
			})
		}
	}
	for _, ax := range tm.Axioms {
		pp := ax.PrePosts[0]
		var pre []task.Fact
		if pp.Pre != task.NoPreconditionValue {
			pre = append(pre, task.Fact{Var: pp.Var, Val: pp.Pre})
		}
		pre = append(pre, pp.Cond...)
		raw = append(raw, &UnaryOperator{
			Precondition: dedupFacts(pre),
			Effect:       task.Fact{Var: pp.Var, Val: pp.Post},
			OperatorID:   -1,
			IsAxiom:      true,
			Cost:         0,
		})
	}

	m.Ops = pruneDominated(raw)

	m.preconditionOf = make([][]int32, m.numProps)
	for i, uop := range m.Ops {
		for _, f := range uop.Precondition {
			p := m.PropID(f)
			m.preconditionOf[p] = append(m.preconditionOf[p], int32(i))
		}
	}

	return m
}

func dedupFacts(facts []task.Fact) []task.Fact {
	seen := make(map[task.Fact]bool, len(facts))
	out := make([]task.Fact, 0, len(facts))
	for _, f := range facts {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// pruneDominated groups unary operators by effect fact, then — within the
// same effect — removes any operator whose precondition set is a superset
// of (or equal to) another's at >= cost Uses the same
// "bounded subset scan" shortcut as causalgraph.simplifyLabels;
// above the bound, all candidates for that effect are kept untouched.
func pruneDominated(ops []*UnaryOperator) []*UnaryOperator {
	byEffect := make(map[task.Fact][]*UnaryOperator)
	for _, o := range ops {
		byEffect[o.Effect] = append(byEffect[o.Effect], o)
	}

	const boundedScan = 31
	var out []*UnaryOperator
	for _, group := range byEffect {
		if len(group) > boundedScan {
			out = append(out, group...)
			continue
		}
		dominated := make([]bool, len(group))
		for i := range group {
			for j := range group {
				if i == j || dominated[j] {
					continue
				}
				if !factSetSubset(group[i].Precondition, group[j].Precondition) ||
					group[i].Cost > group[j].Cost {
					continue
				}
				if group[i].Cost == group[j].Cost && j < i &&
					sameFactSet(group[i].Precondition, group[j].Precondition) {
					continue // equal duplicates: the lower index is kept
				}
				dominated[j] = true
			}
		}
		for i, o := range group {
			if !dominated[i] {
				out = append(out, o)
			}
		}
	}
	return out
}

func factSetSubset(a, b []task.Fact) bool {
	for _, fa := range a {
		ok := false
		for _, fb := range b {
			if fa == fb {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func sameFactSet(a, b []task.Fact) bool {
	return factSetSubset(a, b) && factSetSubset(b, a) && len(a) == len(b)
}

// clampCost saturates at MaxCostValue to guard against overflow in h_add's
// summation.
func clampCost(c int64) int64 {
	if c > MaxCostValue || c < 0 {
		return MaxCostValue
	}
	return c
}
