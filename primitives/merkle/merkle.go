// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle builds and verifies the Merkle trees used to commit a
// block's transaction set to its header.
package merkle

import "github.com/novacore/novad/chainhash"

// nextPowerOfTwo returns the next highest power of two from a given number
// if it is not already a power of two, used to size the fixed-capacity
// backing array for a tree built bottom-up.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	exponent := uint(0)
	for 1<<exponent < n {
		exponent++
	}
	return 1 << exponent
}

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation.
func hashMerkleBranches(left, right *chainhash.Hash) *chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	newHash := chainhash.HashH(buf[:])
	return &newHash
}

// Tree is a materialized Merkle tree, stored as a flattened array of
// levels: leaves first, root last. It is built once per block and reused
// both to read off the root and to enumerate branches for any leaf index.
type Tree struct {
	nodes  []*chainhash.Hash
	numTx  int
}

// BuildTree creates a Merkle tree from a slice of transaction hashes.
// Level 0 is the leaves; at each subsequent level, adjacent hashes are
// paired and hashed together, duplicating the final hash when a level has
// an odd number of entries.
func BuildTree(leaves []chainhash.Hash) *Tree {
	if len(leaves) == 0 {
		return &Tree{nodes: []*chainhash.Hash{{}}, numTx: 0}
	}

	// Array-based representation: the tree is stored level by level in a
	// single slice sized for the next power of two, which bounds the
	// total node count at 2*nextPow2-1.
	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	nodes := make([]*chainhash.Hash, arraySize)

	for i := range leaves {
		h := leaves[i]
		nodes[i] = &h
	}

	// Fill in the empty leaf slots with nil to be duplicated below.
	offset := nextPoT
	for i := 0; i < nextPoT-len(leaves); i++ {
		nodes[len(leaves)+i] = nil
	}

	for level := 0; level < treeDepth(nextPoT); level++ {
		levelOffset, levelSize := levelBounds(nextPoT, level)
		for i := 0; i < levelSize; i += 2 {
			left := nodes[levelOffset+i]
			var right *chainhash.Hash
			if i+1 < levelSize {
				right = nodes[levelOffset+i+1]
			}
			if left == nil {
				nodes[offset] = nil
			} else if right == nil {
				nodes[offset] = hashMerkleBranches(left, left)
			} else {
				nodes[offset] = hashMerkleBranches(left, right)
			}
			offset++
		}
	}

	return &Tree{nodes: nodes, numTx: len(leaves)}
}

// treeDepth returns the number of internal levels above the leaves for a
// tree whose leaf level has size nextPoT (a power of two).
func treeDepth(nextPoT int) int {
	depth := 0
	for size := nextPoT; size > 1; size = (size + 1) / 2 {
		depth++
	}
	return depth
}

// levelBounds returns the starting offset and number of nodes of the given
// level (0 = leaves) within the flattened array for a tree whose leaf
// level size is nextPoT.
func levelBounds(nextPoT, level int) (offset, size int) {
	size = nextPoT
	for l := 0; l < level; l++ {
		offset += size
		size = (size + 1) / 2
	}
	return offset, size
}

// Root returns the Merkle root of the tree.
func (t *Tree) Root() chainhash.Hash {
	if len(t.nodes) == 0 || t.nodes[len(t.nodes)-1] == nil {
		return chainhash.Hash{}
	}
	return *t.nodes[len(t.nodes)-1]
}

// CalcMerkleRoot is a convenience wrapper that builds a tree over the given
// leaves and returns only the root, matching §4.1 of the specification.
func CalcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	return BuildTree(leaves).Root()
}

// Branch is the sequence of sibling hashes, innermost first, needed to
// recompute the Merkle root from a single leaf.
type Branch []chainhash.Hash

// BranchForIndex enumerates the sibling hash at each level on the path from
// leaf index idx to the root.
func (t *Tree) BranchForIndex(idx int) Branch {
	if t.numTx == 0 || idx < 0 || idx >= t.numTx {
		return nil
	}
	nextPoT := nextPowerOfTwo(t.numTx)
	var branch Branch
	pos := idx
	for level := 0; level < treeDepth(nextPoT); level++ {
		offset, size := levelBounds(nextPoT, level)
		siblingPos := pos ^ 1
		var sibling *chainhash.Hash
		if siblingPos < size {
			sibling = t.nodes[offset+siblingPos]
		}
		if sibling == nil {
			sibling = t.nodes[offset+pos]
		}
		branch = append(branch, *sibling)
		pos /= 2
	}
	return branch
}

// CheckBranch recomputes the Merkle root by repeatedly combining leaf with
// the branch's sibling hashes, using idx's bits to decide left/right order
// at each level, and reports whether it matches root.
func CheckBranch(branch Branch, leaf chainhash.Hash, idx int, root chainhash.Hash) bool {
	cur := leaf
	pos := idx
	for _, sib := range branch {
		if pos&1 == 0 {
			cur = *hashMerkleBranches(&cur, &sib)
		} else {
			cur = *hashMerkleBranches(&sib, &cur)
		}
		pos /= 2
	}
	return cur == root
}
