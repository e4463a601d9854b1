package pdb

import "github.com/sasplan/fdplanner/task"

// matchTree is a fixed-depth trie over pattern positions 0..k-1, one level
// per position, tested in strictly increasing order. At each level an
// operator either constrains that position to an exact value (an "exact"
// child) or leaves it unconstrained (the "star" child); a query follows
// both the exact child matching the queried state and the star child,
// collecting the union of operators reached at every leaf — so inserting
// an operator with a sparser regression-test set never requires rebuilding
// the levels above it, since every position always has its own node.
type matchTree struct {
	root *trieNode
	k    int
}

type trieNode struct {
	exact map[int32]*trieNode
	star  *trieNode
	ops   []int32
}

func newMatchTree(k int) *matchTree {
	return &matchTree{root: &trieNode{}, k: k}
}

// insert registers opIdx under tests, a (local pattern position -> value)
// constraint set; positions absent from tests are unconstrained.
func (mt *matchTree) insert(tests []task.Fact, opIdx int32) {
	byPos := make(map[int32]int32, len(tests))
	for _, f := range tests {
		byPos[f.Var] = f.Val
	}

	node := mt.root
	for level := int32(0); int(level) < mt.k; level++ {
		if val, ok := byPos[level]; ok {
			if node.exact == nil {
				node.exact = make(map[int32]*trieNode)
			}
			child, ok := node.exact[val]
			if !ok {
				child = &trieNode{}
				node.exact[val] = child
			}
			node = child
		} else {
			if node.star == nil {
				node.star = &trieNode{}
			}
			node = node.star
		}
	}
	node.ops = append(node.ops, opIdx)
}

// query collects every operator whose regression test set is satisfied by
// state (local pattern values, as returned by PDB.Decode).
func (mt *matchTree) query(state []int32, out *[]int32) {
	mt.root.collect(0, mt.k, state, out)
}

func (n *trieNode) collect(level, k int, state []int32, out *[]int32) {
	if level == k {
		*out = append(*out, n.ops...)
		return
	}
	if n.exact != nil {
		if child, ok := n.exact[state[level]]; ok {
			child.collect(level+1, k, state, out)
		}
	}
	if n.star != nil {
		n.star.collect(level+1, k, state, out)
	}
}
