// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dcrutil

import (
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

// BlockHeightUnknown is the value returned for a block height that hasn't
// been set.
const BlockHeightUnknown = -1

// Block defines a decred block that provides easier and more efficient
// manipulation of raw wire blocks, caching the block's proof-of-work hash
// and its wrapped transaction list on first access.
type Block struct {
	msgBlock *wire.MsgBlock
	blockHash *chainhash.Hash
	height    int64
	txns      []*Tx
}

// NewBlock returns a new instance of a block given the underlying
// wire.MsgBlock. The height is set to BlockHeightUnknown.
func NewBlock(msgBlock *wire.MsgBlock) *Block {
	return &Block{msgBlock: msgBlock, height: BlockHeightUnknown}
}

// MsgBlock returns the underlying wire.MsgBlock for the block.
func (b *Block) MsgBlock() *wire.MsgBlock {
	return b.msgBlock
}

// Hash returns the scrypt proof-of-work hash of the block, computing and
// caching it on first call.
func (b *Block) Hash() (*chainhash.Hash, error) {
	if b.blockHash != nil {
		return b.blockHash, nil
	}
	hash, err := b.msgBlock.Header.BlockHash()
	if err != nil {
		return nil, err
	}
	b.blockHash = &hash
	return b.blockHash, nil
}

// Height returns the saved height of the block, or BlockHeightUnknown if
// it hasn't been set.
func (b *Block) Height() int64 {
	return b.height
}

// SetHeight sets the height of the block.
func (b *Block) SetHeight(height int64) {
	b.height = height
}

// Transactions returns a slice of wrapped transactions for the block, with
// each Tx's block index set, building the wrapper slice on first call.
func (b *Block) Transactions() []*Tx {
	if b.txns != nil {
		return b.txns
	}
	b.txns = make([]*Tx, len(b.msgBlock.Transactions))
	for i, msgTx := range b.msgBlock.Transactions {
		tx := NewTx(msgTx)
		tx.SetIndex(i)
		b.txns[i] = tx
	}
	return b.txns
}
