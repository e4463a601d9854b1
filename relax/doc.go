// Package relax implements the delete-relaxation heuristic family
// (h_max, h_add, h_ff) shared over one unary-operator model.
//
// All three share the same Dijkstra-style proposition relaxation (core.go,
// modeled directly on dijkstra.go's lazy-decrease-key nodePQ), differing
// only in how a fired unary operator's precondition costs aggregate into
// its effect's tentative cost (max vs sum), and in whether a relaxed plan
// is additionally extracted (h_ff).
//
// A goal proposition with cost MaxCostValue signals a dead end; the
// heuristic functions return MaxCostValue directly as the dead-end
// sentinel rather than a separate boolean
package relax
