// Package pdbcollection maintains a canonical collection of pattern
// databases: the additive-compatibility graph over patterns, its maximal
// cliques (Tomita's algorithm with pivoting), max-over-cliques evaluation,
// and Haslum-style hill-climbing search for which patterns to add.
package pdbcollection
