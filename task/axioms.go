package task

// Axiom evaluation: derived variables are stratified by axiom layer. Within
// a layer, a forward-chaining Horn propagation fires rules whose
// preconditions are satisfied; between layers, negation-by-failure assigns
// each unset derived variable its default value.
//
// The result is a unique fixed point, deterministic in the values of the
// primary (non-derived) variables — and idempotent: evaluating an
// already-closed state is a no-op — callers may re-run axiom evaluation
// freely on an already-closed state without changing anything.
//
// defaultValue for a derived variable is, by SAS+ convention, the value it
// takes when no axiom concludes it: domain value 0 (the "false"/default
// fact for boolean derived variables, generalized to the first domain
// value for multi-valued derived variables).
const defaultDerivedValue int32 = 0

// EvaluateAxioms closes every derived variable in values to its stratified
// fixed point, mutating values in place. Primary (non-derived) variables
// are left untouched.
func (tm *TaskModel) EvaluateAxioms(values []int32) {
	if tm.numLayers == 0 {
		return
	}

	// Reset every derived variable to "unset" (represented here by the
	// default value up front; negation-by-failure below is then a no-op
	// if no rule ever fires, which is exactly the semantics we want).
	for v := range tm.Variables {
		if tm.Variables[v].IsDerived() {
			values[v] = defaultDerivedValue
		}
	}

	for layer := int32(0); layer < tm.numLayers; layer++ {
		tm.evaluateLayer(layer, values)
	}
}

// evaluateLayer runs forward-chaining Horn propagation to a fixed point
// within one axiom layer: repeatedly scan the layer's axioms, firing any
// whose body (precondition + effect conditions) is satisfied, until a full
// scan produces no new firing.
func (tm *TaskModel) evaluateLayer(layer int32, values []int32) {
	axioms := tm.axiomsByLayer[layer]
	changed := true
	for changed {
		changed = false
		for _, ax := range axioms {
			pp := ax.PrePosts[0]
			if pp.Pre != NoPreconditionValue && values[pp.Var] != pp.Pre {
				continue
			}
			if !conditionsHold(pp.Cond, values) {
				continue
			}
			if values[pp.Var] != pp.Post {
				values[pp.Var] = pp.Post
				changed = true
			}
		}
	}
}
