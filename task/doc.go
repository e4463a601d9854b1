// Package task owns the grounded SAS+ planning task: variables, facts,
// operators (with conditional effects), axioms, the packed-state
// representation, and the state registry.
//
//   - Variables have finite domains and an optional axiom layer.
//   - Operators are non-negative-cost pre-post lists; axioms are
//     zero-cost single-effect rules stratified by layer.
//   - PackedState bin-packs a full variable assignment into 32-bit words;
//     StateRegistry interns packed states and hands out dense StateIDs.
//   - TaskModel is constructed once (via planio, or NewTaskModel directly)
//     and is immutable and read-shared for the lifetime of a run: no
//     locking is required, unlike a mutable core.Graph.
//
// Complexity: Pack/Unpack are O(|Variables|); Apply is
// O(|PrePosts| + axiom evaluation); axiom evaluation is
// O(layers * axioms-per-layer) per fixed-point pass, bounded by the number
// of derived variables (each pass can only increase known-true facts).
package task
