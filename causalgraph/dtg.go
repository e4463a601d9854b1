// Package causalgraph builds the per-variable domain-transition graphs
// (DTGs) and the causal graph of a TaskModel.
//
// A DTG for variable v has one node per domain value; for each operator
// writing v there is an arc pre -> post labeled with the operator's id and
// the subset of its OTHER conditions that involve "parent" variables
// (variables other than v that the arc's firing also depends on),
// projected to local parent-variable indices for that DTG — this is the
// extra bookkeeping the CEA heuristic (package cea) needs
//
// Construction style is lifted from dijkstra.go's graph-local runner
// pattern: a dedicated builder struct walks the task's operators once
// (O(total operator size)) and emits per-variable arc lists directly,
// rather than building a generic core.Graph and projecting it afterward.
package causalgraph

import (
	"sort"

	"github.com/sasplan/fdplanner/task"
)

// Label is one DTG arc's payload: which operator causes the transition,
// its base cost, and the local-parent preconditions (conditions on
// variables other than the DTG's own variable) that must hold for the arc
// to be usable.
type Label struct {
	OperatorID int32
	Cost       int32
	// LocalConditions are the arc's cross-variable conditions, expressed as
	// facts on GLOBAL variable indices; ToLocal translates a global
	// variable index into this DTG's "local parent" index space.
	LocalConditions []task.Fact
}

// Arc is one value -> value transition of a DTG.
type Arc struct {
	From, To int32
	Labels   []Label
}

// DTG is the domain-transition graph for one variable.
type DTG struct {
	Var int32
	// Arcs is indexed by source value; Arcs[from] lists every outgoing arc.
	Arcs [][]Arc

	// localParents lists, in increasing global-variable-index order, every
	// OTHER variable that appears in some arc's LocalConditions — the
	// "local variable" index space for this DTG.
	localParents []int32
	localIndex   map[int32]int32 // global var -> local index
}

// NumLocalParents returns how many distinct other variables this DTG's
// labels condition on.
func (d *DTG) NumLocalParents() int { return len(d.localParents) }

// LocalParent returns the global variable index of local parent i.
func (d *DTG) LocalParent(i int) int32 { return d.localParents[i] }

// ToLocal translates a global variable index into this DTG's local parent
// index, or (-1, false) if that variable is not a local parent here.
func (d *DTG) ToLocal(globalVar int32) (int32, bool) {
	idx, ok := d.localIndex[globalVar]
	if !ok {
		return -1, false
	}
	return idx, true
}

// BuildAll constructs one DTG per variable of tm, with dominance-pruned,
// deduplicated labels — the bounded-subset dominance check lives in
// simplify.go.
func BuildAll(tm *task.TaskModel) []*DTG {
	dtgs := make([]*DTG, len(tm.Variables))
	for v := range tm.Variables {
		dtgs[v] = &DTG{
			Var:        int32(v),
			Arcs:       make([][]Arc, tm.Variables[v].DomainSize),
			localIndex: make(map[int32]int32),
		}
	}

	for opIdx := range tm.Operators {
		op := &tm.Operators[opIdx]
		for _, pp := range op.PrePosts {
			if pp.Pre == pp.Post {
				continue // prevail condition, not a transition
			}
			d := dtgs[pp.Var]
			// Every OTHER pre-pair of this operator (pre defined, i.e. a
			// true constraint on the predecessor) is a cross-variable
			// condition this arc depends on, in addition to pp.Cond.
			var localConds []task.Fact
			for _, other := range op.PrePosts {
				if other.Var == pp.Var {
					continue
				}
				if other.Pre != task.NoPreconditionValue {
					localConds = append(localConds, task.Fact{Var: other.Var, Val: other.Pre})
				}
			}
			localConds = append(localConds, pp.Cond...)

			from := pp.Pre
			if from == task.NoPreconditionValue {
				// Arc fires from every source value other than pp.Post —
				// the same "enumerate one hop per possible source value"
				// rule used when projecting operators without an explicit
				// precondition onto an abstraction's domain.
				for src := int32(0); src < tm.Variables[pp.Var].DomainSize; src++ {
					if src == pp.Post {
						continue
					}
					d.addArc(src, pp.Post, Label{OperatorID: int32(opIdx), Cost: op.Cost, LocalConditions: localConds})
				}
			} else {
				d.addArc(from, pp.Post, Label{OperatorID: int32(opIdx), Cost: op.Cost, LocalConditions: localConds})
			}
		}
	}

	for _, d := range dtgs {
		d.registerLocalParents()
		d.simplify()
	}

	return dtgs
}

func (d *DTG) addArc(from, to int32, lbl Label) {
	for i := range d.Arcs[from] {
		if d.Arcs[from][i].To == to {
			d.Arcs[from][i].Labels = append(d.Arcs[from][i].Labels, lbl)
			return
		}
	}
	d.Arcs[from] = append(d.Arcs[from], Arc{From: from, To: to, Labels: []Label{lbl}})
}

// registerLocalParents collects, in sorted order, every global variable
// referenced by any label's LocalConditions.
func (d *DTG) registerLocalParents() {
	seen := make(map[int32]bool)
	for _, arcs := range d.Arcs {
		for _, a := range arcs {
			for _, lbl := range a.Labels {
				for _, f := range lbl.LocalConditions {
					seen[f.Var] = true
				}
			}
		}
	}
	parents := make([]int32, 0, len(seen))
	for v := range seen {
		parents = append(parents, v)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })
	d.localParents = parents
	for i, v := range parents {
		d.localIndex[v] = int32(i)
	}
}
