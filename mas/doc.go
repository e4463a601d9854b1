// Package mas implements the merge-and-shrink abstraction heuristic:
// atomic per-variable abstractions, synchronized product composition,
// three shrink strategies (f/h-layer bucketing, bisimulation, and a
// budget-bounded DFP variant), optional label reduction before a merge of
// disjoint-variable factors, and a Collection taking the max over however
// many final abstractions are kept.
//
// A merged abstraction never materializes a lookup table over raw
// concrete-variable values: Lookup instead recurses through the two
// factors that produced it (frozen once consumed, per the "composite
// abstractions borrow from their factors, then are independent"
// ownership rule) and composes their indices, with any shrink's quotient
// map applied last. This keeps state-space growth bounded by the
// (already-shrunk) factor sizes instead of the product of raw variable
// domains.
package mas
