// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sort"

	"github.com/novacore/novad/blockchain/stake"
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/primitives/uint256"
	"github.com/novacore/novad/wire"
)

// statusFlags records how far a block has progressed through validation
// and what's available for it on disk (§4.5 "Block index"), mirroring the
// monotonic BLOCK_VALID_* staging the reference client uses so a reorg
// never has to redo checks an earlier pass already completed.
type statusFlags uint32

const (
	statusValidHeader statusFlags = 1 << iota
	statusValidTree
	statusValidTransactions
	statusValidChain
	statusValidScripts

	statusHaveData
	statusHaveUndo

	statusFailedValid
	statusFailedChild
)

const statusValidMask = statusValidHeader | statusValidTree |
	statusValidTransactions | statusValidChain | statusValidScripts

const statusFailedMask = statusFailedValid | statusFailedChild

// blockFlags records the proof-of-stake metadata carried in a blockNode's
// nFlags word: whether the block is itself a stake block, its entropy bit
// contribution, and whether it regenerated the stake modifier.
type blockFlags uint8

const (
	flagProofOfStake blockFlags = 1 << iota
	flagStakeEntropyBit
	flagStakeModifierGenerated
)

// blockNode is one entry in the in-memory block index tree: the header
// plus everything derived from validating it, including the stake kernel
// bookkeeping blockchain/stake's kernel math consumes through the
// NodeInfo interface this type implements.
type blockNode struct {
	parent   *blockNode
	next     *blockNode
	children []*blockNode

	hash   chainhash.Hash
	height int64

	version    int32
	merkleRoot chainhash.Hash
	timestamp  uint32
	bits       uint32
	nonce      uint32

	chainTrust uint256.Uint256

	status statusFlags
	flags  blockFlags

	fileNumber int32
	dataPos    uint32
	undoPos    uint32

	stakeModifier         uint64
	stakeModifierChecksum uint32
	prevoutStake          wire.OutPoint
	stakeTime             uint32
	hashProofOfStake      chainhash.Hash
}

// newBlockNode builds a blockNode from a header and its parent, computing
// height and chain trust the way the reference client's CBlockIndex
// constructor does from a freshly connected CBlock.
func newBlockNode(header *wire.BlockHeader, parent *blockNode) (*blockNode, error) {
	hash, err := header.BlockHash()
	if err != nil {
		return nil, err
	}
	node := &blockNode{
		hash:       hash,
		version:    header.Version,
		merkleRoot: header.MerkleRoot,
		timestamp:  header.Timestamp,
		bits:       header.Bits,
		nonce:      header.Nonce,
		parent:     parent,
	}
	if parent != nil {
		node.height = parent.height + 1
	}
	return node, nil
}

// Height implements stake.NodeInfo.
func (n *blockNode) Height() int64 { return n.height }

// Timestamp implements stake.NodeInfo.
func (n *blockNode) Timestamp() int64 { return int64(n.timestamp) }

// Hash implements stake.NodeInfo.
func (n *blockNode) Hash() chainhash.Hash { return n.hash }

// Parent implements stake.NodeInfo. The nil interface check matters here:
// returning a typed-nil *blockNode through the NodeInfo interface would
// make a nil comparison against the interface value false, so this
// explicitly surfaces a true nil interface at the root of the chain.
func (n *blockNode) Parent() stake.NodeInfo {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Next implements stake.NodeInfo.
func (n *blockNode) Next() stake.NodeInfo {
	if n.next == nil {
		return nil
	}
	return n.next
}

// IsProofOfStake implements stake.NodeInfo.
func (n *blockNode) IsProofOfStake() bool {
	return n.flags&flagProofOfStake != 0
}

// setProofOfStake marks the node as a stake block.
func (n *blockNode) setProofOfStake() {
	n.flags |= flagProofOfStake
}

// StakeEntropyBit implements stake.NodeInfo.
func (n *blockNode) StakeEntropyBit() uint8 {
	if n.flags&flagStakeEntropyBit != 0 {
		return 1
	}
	return 0
}

// setStakeEntropyBit sets the node's stake modifier entropy contribution.
func (n *blockNode) setStakeEntropyBit(bit uint8) {
	if bit != 0 {
		n.flags |= flagStakeEntropyBit
	}
}

// GeneratedStakeModifier implements stake.NodeInfo.
func (n *blockNode) GeneratedStakeModifier() bool {
	return n.flags&flagStakeModifierGenerated != 0
}

// StakeModifier implements stake.NodeInfo.
func (n *blockNode) StakeModifier() uint64 { return n.stakeModifier }

// setStakeModifier records the stake modifier computed for this node,
// noting whether it was freshly generated at this block or carried over.
func (n *blockNode) setStakeModifier(modifier uint64, generated bool) {
	n.stakeModifier = modifier
	if generated {
		n.flags |= flagStakeModifierGenerated
	}
}

// HashProofOfStake implements stake.NodeInfo.
func (n *blockNode) HashProofOfStake() chainhash.Hash { return n.hashProofOfStake }

// isValid reports whether the node has completed validation through
// level, using the monotonic BLOCK_VALID_* staging.
func (n *blockNode) isValid(level statusFlags) bool {
	if n.status&statusFailedMask != 0 {
		return false
	}
	return n.status&statusValidMask >= level
}

// raiseValidity advances the node's validation stage to level, never
// moving it backward.
func (n *blockNode) raiseValidity(level statusFlags) {
	if n.status&statusValidMask < level {
		n.status = (n.status &^ statusValidMask) | level
	}
}

// hasData reports whether the full block body is on disk.
func (n *blockNode) hasData() bool { return n.status&statusHaveData != 0 }

// hasUndo reports whether undo data for the block is on disk.
func (n *blockNode) hasUndo() bool { return n.status&statusHaveUndo != 0 }

// markFailed flags n itself as having failed connection (script, fee, or
// kernel validation rejected it after it was already accepted into the
// index), then walks every descendant already linked into the index and
// flags each as having a failed ancestor, so neither n nor anything built
// on top of it is ever offered as a candidate tip again.
func (n *blockNode) markFailed() {
	n.status |= statusFailedValid
	for _, child := range n.children {
		child.markChildFailed()
	}
}

func (n *blockNode) markChildFailed() {
	n.status |= statusFailedChild
	for _, child := range n.children {
		child.markChildFailed()
	}
}

// medianTimePast computes the median timestamp of up to the last 11
// ancestors including this node, the timestamp contextual checks compare
// a candidate block's own timestamp against.
func (n *blockNode) medianTimePast() int64 {
	const span = 11
	times := make([]int64, 0, span)
	node := n
	for i := 0; i < span && node != nil; i++ {
		times = append(times, int64(node.timestamp))
		node = node.parent
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times[len(times)/2]
}

// ancestorAt walks parent pointers back to the node at the given height,
// or nil if height is out of range for this chain.
func (n *blockNode) ancestorAt(height int64) *blockNode {
	if height < 0 || height > n.height {
		return nil
	}
	node := n
	for node != nil && node.height > height {
		node = node.parent
	}
	return node
}

// blockIndex is the full set of known blockNodes, addressable by hash,
// forming the tree every known header (valid or not) hangs off of.
type blockIndex struct {
	index map[chainhash.Hash]*blockNode
}

// newBlockIndex returns an empty blockIndex.
func newBlockIndex() *blockIndex {
	return &blockIndex{index: make(map[chainhash.Hash]*blockNode)}
}

// lookupNode returns the node for hash, or nil if unknown.
func (bi *blockIndex) lookupNode(hash chainhash.Hash) *blockNode {
	return bi.index[hash]
}

// addNode registers node in the index and links it into its parent's
// children, so a later failure can be propagated down to every descendant
// built on top of it.
func (bi *blockIndex) addNode(node *blockNode) {
	bi.index[node.hash] = node
	if node.parent != nil {
		node.parent.children = append(node.parent.children, node)
	}
}

// findFork returns the highest common ancestor of a and b, the point a
// reorg between the two chains must disconnect down to and connect up
// from.
func findFork(a, b *blockNode) *blockNode {
	for a.height > b.height {
		a = a.parent
	}
	for b.height > a.height {
		b = b.parent
	}
	for a != b {
		a = a.parent
		b = b.parent
	}
	return a
}
