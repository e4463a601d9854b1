// Package causalgraph builds the per-variable domain-transition graphs
// (DTGs) and the task's causal graph.
//
// DTGs carry, per label, the local-parent preconditions the CEA heuristic
// (package cea) suspends on; the causal graph distinguishes "legacy"
// (precondition -> effect) arcs from effect-condition-only arcs, matching
// the CG-heuristic's restriction to legacy arcs.
package causalgraph
