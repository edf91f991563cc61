// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/primitives/merkle"
	"github.com/novacore/novad/wire"
)

// genesisCoinbaseScript is embedded in the genesis block's sole
// transaction the way Bitcoin-family genesis blocks embed a timestamped
// headline, proving no one could have mined it before that date.
const genesisCoinbaseScript = "Bloomberg 13-Jan-2012 Cyprus needs a bailout from the EU, ECB, or IMF"

// newGenesisBlock builds a single-transaction proof-of-work genesis block
// for the given network, with the coinbase paying the premine ledger.
func newGenesisBlock(timestamp uint32, bits uint32, nonce uint32, premine []TokenPayout) *wire.MsgBlock {
	outs := make([]*wire.TxOut, 0, len(premine)+1)
	if len(premine) == 0 {
		outs = append(outs, &wire.TxOut{Value: 0, PkScript: nil})
	}
	for _, p := range premine {
		script := append([]byte{0x76, 0xa9, 0x14}, p.PubKeyHash[:]...)
		script = append(script, 0x88, 0xac)
		outs = append(outs, &wire.TxOut{Value: p.Amount, PkScript: script})
	}

	coinbase := &wire.MsgTx{
		Version: wire.TxVersion,
		Time:    timestamp,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Index: 0xffffffff},
			SignatureScript:  []byte(genesisCoinbaseScript),
			Sequence:         wire.MaxTxInSequenceNum,
		}},
		TxOut:    outs,
		LockTime: 0,
	}

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			Timestamp: timestamp,
			Bits:      bits,
			Nonce:     nonce,
		},
		Transactions: []*wire.MsgTx{coinbase},
	}
	block.Header.MerkleRoot = merkle.CalcMerkleRoot([]chainhash.Hash{coinbase.TxHash()})
	return block
}
