// Package cea computes the context-enhanced additive heuristic over one
// TaskModel's causal-graph domain-transition graphs.
//
// Unlike relax's unary-operator model (one flat proposition graph), this
// heuristic keeps one local Dijkstra-style search per variable, each
// answering "what does it cost to move variable v from its current value to
// some target value v, given everything else about the current state?" The
// local problems are coupled: a DTG arc for variable v may require another
// variable u to already hold some value, so that arc's transition suspends
// until u's own local problem reports the cost of reaching it. One shared
// priority heap (heapPQ, modeled on the lazy-decrease-key discipline of
// relax's propPQ and dijkstra.go's nodePQ) interleaves expansion across every
// local problem so dependencies always resolve before they're needed.
//
// A dedicated two-node "goal problem" plays the same role for the task's
// goal conjunction: its single transition depends on every goal fact,
// exactly like any ordinary DTG arc depends on its cross-variable
// conditions. Its sink's final cost is the heuristic value.
package cea
