// Package succgen compiles a successor generator: a decision DAG over
// (variable, value) tests that, given a state, returns exactly the set of
// operators applicable in that state.
//
// Complexity: a query is O(matched-operators + traversed-nodes). Build
// copies an operator with no precondition on a switch's test variable into
// every child of that switch, so the DAG can hold far more entries than
// the total operator-precondition size.
package succgen
