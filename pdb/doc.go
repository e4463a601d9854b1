// Package pdb implements a single pattern database over a subset of a
// task's variables: see Build. A PDB is consulted read-only after
// construction (Lookup), mirroring the frozen-after-construction discipline
// of task.TaskModel — nothing here is safe for concurrent mutation because
// nothing here is ever mutated past Build.
//
// The distance table is a plain []int64 rather than matrix.Dense: Dense
// models a 2-D numeric grid, and a PDB's abstract state space is a flat
// 1-D mixed-radix index, so the dense 2-D shape doesn't fit and would only
// add an unused row/column dimension.
package pdb
