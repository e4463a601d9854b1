// Package task defines the grounded planning task: variables, facts,
// operators, axioms, the initial state and the goal. It owns every piece of
// static data the rest of the engine reads but never mutates once
// construction (planio.ReadTask) completes.
//
// The shape mirrors a SAS+ planning task: each Variable has a finite domain
// 0..domainSize-1, each Operator is a list of pre-post pairs (with optional
// conditional effects), and Axioms compute derived variables as a stratified
// Horn program over the primary variables.
package task

import (
	"errors"
	"fmt"
)

// Sentinel errors for task construction and validation.
var (
	// ErrEmptyVariables indicates a task was built with zero variables.
	ErrEmptyVariables = errors.New("task: no variables")

	// ErrBadDomainSize indicates a variable's domain size is not positive.
	ErrBadDomainSize = errors.New("task: domain size must be > 0")

	// ErrVariableIndexOutOfRange indicates a fact or condition referenced a
	// variable index outside [0, len(Variables)).
	ErrVariableIndexOutOfRange = errors.New("task: variable index out of range")

	// ErrValueOutOfRange indicates a fact value outside [0, domainSize).
	ErrValueOutOfRange = errors.New("task: value out of domain range")

	// ErrDuplicateEffectVariable indicates an operator has two effects on
	// the same variable, violating the "at most one effect per variable"
	// invariant.
	ErrDuplicateEffectVariable = errors.New("task: operator has two effects on same variable")

	// ErrNegativeCost indicates an operator or axiom has cost < 0.
	ErrNegativeCost = errors.New("task: operator cost must be >= 0")

	// ErrNotApplicable indicates Apply was called with an operator that is
	// not applicable in the given state — a programmer error
	ErrNotApplicable = errors.New("task: operator not applicable in state")
)

// Fact is a (variable, value) pair.
type Fact struct {
	Var int32
	Val int32
}

// Variable describes one SAS+ state variable.
//
// AxiomLayer is -1 for primary (operator-settable) variables and >= 0 for
// derived variables, stratified into that many Horn-evaluation layers.
type Variable struct {
	Name       string   // human-readable variable name, diagnostics only
	DomainSize int32    // values are in [0, DomainSize)
	AxiomLayer int32    // -1 for primary variables
	FactNames  []string // FactNames[v] names value v, len == DomainSize
}

// IsDerived reports whether this variable is computed by axioms rather than
// set directly by operator effects.
func (v *Variable) IsDerived() bool { return v.AxiomLayer >= 0 }

// EffectCondition is one conjunct of an effect's condition list: the effect
// only fires if this fact held in the predecessor state.
type EffectCondition = Fact

// PrePost is one pre-post pair of an operator: on variable Var, the
// predecessor must have value Pre (or Pre == NoPreconditionValue for "any"),
// and — if every fact in Cond holds in the predecessor — the successor gets
// value Post.
type PrePost struct {
	Var  int32
	Pre  int32 // NoPreconditionValue if unconstrained
	Post int32
	Cond []EffectCondition
}

// NoPreconditionValue marks a PrePost.Pre (or an abstract operator's
// projected precondition) as unconstrained.
const NoPreconditionValue int32 = -1

// Operator is a grounded action: a name, non-negative integer cost, and a
// list of pre-post effects. At most one PrePost may target any given
// variable (enforced by NewTaskModel).
type Operator struct {
	Name      string
	Cost      int32
	PrePosts  []PrePost
	id        int32 // dense index assigned by the owning TaskModel
}

// ID returns this operator's dense index within its TaskModel's Operators
// slice. Valid only for operators obtained from a TaskModel.
func (o *Operator) ID() int32 { return o.id }

// Preconditions returns every (var, val) pair that must hold in the
// predecessor for this operator to be applicable at all: every PrePost with
// a defined Pre value. Conditional-effect conditions are NOT included —
// those only gate individual effects, not applicability.
func (o *Operator) Preconditions() []Fact {
	out := make([]Fact, 0, len(o.PrePosts))
	for _, pp := range o.PrePosts {
		if pp.Pre != NoPreconditionValue {
			out = append(out, Fact{Var: pp.Var, Val: pp.Pre})
		}
	}
	return out
}

// Axiom has the same shape as an Operator (cost is always 0) but writes a
// single derived variable and is evaluated by EvaluateAxioms, never by the
// search as a regular action.
type Axiom struct {
	PrePosts []PrePost // exactly one element, by construction
}

// TaskModel owns every piece of static data describing the planning
// problem: variables, operators, axioms (grouped by layer), initial state
// values and the goal. It is built once (by planio.ReadTask, or directly by
// NewTaskModel for tests) and is safe to read-share across heuristics and
// search engines for the lifetime of a run — nothing here is mutated after
// construction, so no locking is required (contrast with core.Graph's
// mutable, lock-guarded maps; a TaskModel is frozen before any heuristic or
// search engine sees it).
type TaskModel struct {
	Variables []Variable
	Operators []Operator
	Axioms    []Axiom // flattened; AxiomsByLayer groups by layer
	InitialValues []int32 // InitialValues[v] is the initial value of variable v
	Goal      []Fact

	axiomsByLayer [][]*Axiom
	numLayers     int32

	packing *packing
}

// NewTaskModel validates and freezes a TaskModel from raw components.
// Configuration and input errors are fatal at construction time, never
// discovered mid-search.
func NewTaskModel(vars []Variable, ops []Operator, axioms []Axiom, initial []int32, goal []Fact) (*TaskModel, error) {
	if len(vars) == 0 {
		return nil, ErrEmptyVariables
	}
	for i := range vars {
		if vars[i].DomainSize <= 0 {
			return nil, fmt.Errorf("%w: variable %d", ErrBadDomainSize, i)
		}
	}
	if len(initial) != len(vars) {
		return nil, fmt.Errorf("task: initial state has %d values, want %d", len(initial), len(vars))
	}
	for v, val := range initial {
		if val < 0 || val >= vars[v].DomainSize {
			return nil, fmt.Errorf("%w: variable %d value %d", ErrValueOutOfRange, v, val)
		}
	}
	for i := range goal {
		if err := validateFact(vars, goal[i]); err != nil {
			return nil, err
		}
	}

	tm := &TaskModel{
		Variables:     vars,
		Operators:     make([]Operator, len(ops)),
		Axioms:        axioms,
		InitialValues: initial,
		Goal:          goal,
	}
	copy(tm.Operators, ops)

	for i := range tm.Operators {
		op := &tm.Operators[i]
		op.id = int32(i)
		if op.Cost < 0 {
			return nil, fmt.Errorf("%w: operator %q", ErrNegativeCost, op.Name)
		}
		seen := make(map[int32]bool, len(op.PrePosts))
		for _, pp := range op.PrePosts {
			if seen[pp.Var] {
				return nil, fmt.Errorf("%w: operator %q variable %d", ErrDuplicateEffectVariable, op.Name, pp.Var)
			}
			seen[pp.Var] = true
			if err := validatePrePost(vars, pp); err != nil {
				return nil, fmt.Errorf("operator %q: %w", op.Name, err)
			}
		}
	}

	maxLayer := int32(-1)
	for i := range vars {
		if vars[i].AxiomLayer > maxLayer {
			maxLayer = vars[i].AxiomLayer
		}
	}
	tm.numLayers = maxLayer + 1
	tm.axiomsByLayer = make([][]*Axiom, tm.numLayers)
	for i := range axioms {
		ax := &tm.Axioms[i]
		if len(ax.PrePosts) != 1 {
			return nil, fmt.Errorf("task: axiom %d must have exactly one effect, got %d", i, len(ax.PrePosts))
		}
		pp := ax.PrePosts[0]
		if err := validatePrePost(vars, pp); err != nil {
			return nil, fmt.Errorf("axiom %d: %w", i, err)
		}
		layer := vars[pp.Var].AxiomLayer
		if layer < 0 {
			return nil, fmt.Errorf("task: axiom %d targets non-derived variable %d", i, pp.Var)
		}
		tm.axiomsByLayer[layer] = append(tm.axiomsByLayer[layer], ax)
	}

	tm.packing = newPacking(vars)

	return tm, nil
}

func validateFact(vars []Variable, f Fact) error {
	if f.Var < 0 || int(f.Var) >= len(vars) {
		return fmt.Errorf("%w: %d", ErrVariableIndexOutOfRange, f.Var)
	}
	if f.Val < 0 || f.Val >= vars[f.Var].DomainSize {
		return fmt.Errorf("%w: variable %d value %d", ErrValueOutOfRange, f.Var, f.Val)
	}
	return nil
}

func validatePrePost(vars []Variable, pp PrePost) error {
	if pp.Var < 0 || int(pp.Var) >= len(vars) {
		return fmt.Errorf("%w: %d", ErrVariableIndexOutOfRange, pp.Var)
	}
	if pp.Pre != NoPreconditionValue {
		if pp.Pre < 0 || pp.Pre >= vars[pp.Var].DomainSize {
			return fmt.Errorf("%w: variable %d pre=%d", ErrValueOutOfRange, pp.Var, pp.Pre)
		}
	}
	if pp.Post < 0 || pp.Post >= vars[pp.Var].DomainSize {
		return fmt.Errorf("%w: variable %d post=%d", ErrValueOutOfRange, pp.Var, pp.Post)
	}
	for _, c := range pp.Cond {
		if err := validateFact(vars, c); err != nil {
			return err
		}
	}
	return nil
}

// AxiomsByLayer returns the axioms assigned to evaluation layer l, in the
// order they were supplied to NewTaskModel.
func (tm *TaskModel) AxiomsByLayer(l int32) []*Axiom { return tm.axiomsByLayer[l] }

// NumAxiomLayers returns 1 + the maximum axiom layer referenced by any
// derived variable (0 if there are no derived variables).
func (tm *TaskModel) NumAxiomLayers() int32 { return tm.numLayers }

// GoalHolds reports whether every goal fact holds in the given full value
// assignment (indexed by variable).
func (tm *TaskModel) GoalHolds(values []int32) bool {
	for _, f := range tm.Goal {
		if values[f.Var] != f.Val {
			return false
		}
	}
	return true
}
