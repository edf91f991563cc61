// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dcrutil

import (
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

// Tx defines a transaction that provides easier and more efficient
// manipulation of raw transactions, caching the transaction hash on first
// computation so every other caller of Hash reuses it instead of re-hashing
// the serialized transaction.
type Tx struct {
	msgTx   *wire.MsgTx
	txHash  *chainhash.Hash
	txIndex int // position within the block, or TxIndexUnknown
}

// TxIndexUnknown is the value returned for an index that hasn't been set.
const TxIndexUnknown = -1

// NewTx returns a new instance of a transaction given the underlying
// wire.MsgTx. The index is set to TxIndexUnknown.
func NewTx(msgTx *wire.MsgTx) *Tx {
	return &Tx{msgTx: msgTx, txIndex: TxIndexUnknown}
}

// MsgTx returns the underlying wire.MsgTx for the transaction.
func (t *Tx) MsgTx() *wire.MsgTx {
	return t.msgTx
}

// Hash returns the hash of the transaction, computing and caching it if
// this is the first call.
func (t *Tx) Hash() *chainhash.Hash {
	if t.txHash != nil {
		return t.txHash
	}
	hash := t.msgTx.TxHash()
	t.txHash = &hash
	return t.txHash
}

// Index returns the saved index of the transaction within a block, or
// TxIndexUnknown if it hasn't been set.
func (t *Tx) Index() int {
	return t.txIndex
}

// SetIndex sets the index of the transaction within a block.
func (t *Tx) SetIndex(index int) {
	t.txIndex = index
}
