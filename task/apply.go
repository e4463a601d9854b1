package task

// Applicability and operator application.
//
// Applying proceeds in two phases:
//   (i)  overwrite every effect whose condition list holds in the
//        predecessor values,
//   (ii) re-close derived variables via EvaluateAxioms.
//
// Applying a non-applicable operator is a programmer error;
// callers MUST check Applicable first — Apply itself does not return an
// error for this case — applying a non-applicable operator is treated as an
// assertion failure, not a recoverable runtime error.

// Applicable reports whether every precondition of op holds in values.
func (tm *TaskModel) Applicable(op *Operator, values []int32) bool {
	for _, pp := range op.PrePosts {
		if pp.Pre != NoPreconditionValue && values[pp.Var] != pp.Pre {
			return false
		}
	}
	return true
}

// Apply produces the successor values of applying op to values. op MUST be
// applicable (per Applicable) — violating this is undefined
// and this implementation panics via ErrNotApplicable to fail loudly rather
// than silently produce a wrong state.
func (tm *TaskModel) Apply(op *Operator, values []int32) []int32 {
	if !tm.Applicable(op, values) {
		panic(ErrNotApplicable)
	}

	succ := make([]int32, len(values))
	copy(succ, values)

	// Phase (i): apply every effect whose condition list holds in the
	// PREDECESSOR (values), never in the partially-written succ.
	for _, pp := range op.PrePosts {
		if conditionsHold(pp.Cond, values) {
			succ[pp.Var] = pp.Post
		}
	}

	// Phase (ii): re-close derived variables from the new primary values.
	tm.EvaluateAxioms(succ)

	return succ
}

func conditionsHold(cond []Fact, values []int32) bool {
	for _, f := range cond {
		if values[f.Var] != f.Val {
			return false
		}
	}
	return true
}
