// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

// Hash types, mirroring the legacy signature hash flags: they select which
// parts of the transaction the signature commits to.
const (
	SigHashAll          = 0x1
	SigHashNone         = 0x2
	SigHashSingle       = 0x3
	SigHashAnyOneCanPay = 0x80
)

// ErrInvalidIndex is returned when a signature hash is requested for an
// input index that does not exist in the transaction, or, under
// SigHashSingle, has no corresponding output.
var ErrInvalidIndex = errors.New("txscript: input index out of range for signature hash")

// CalcSignatureHash computes the hash to be signed (or verified) for the
// given input of tx, following the legacy whole-transaction preimage
// construction: every other input's signature script is blanked, the
// target input's script is replaced by subScript, and for SigHashSingle the
// output list is truncated to match the input's index.
func CalcSignatureHash(subScript []byte, hashType byte, tx *wire.MsgTx, idx int) (chainhash.Hash, error) {
	if idx >= len(tx.TxIn) {
		return chainhash.Hash{}, ErrInvalidIndex
	}

	txCopy := tx.Copy()
	for i := range txCopy.TxIn {
		if i == idx {
			txCopy.TxIn[i].SignatureScript = subScript
		} else {
			txCopy.TxIn[i].SignatureScript = nil
		}
	}

	switch hashType & 0x1f {
	case SigHashNone:
		txCopy.TxOut = nil
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}

	case SigHashSingle:
		if idx >= len(txCopy.TxOut) {
			return chainhash.Hash{}, ErrInvalidIndex
		}
		txCopy.TxOut = txCopy.TxOut[:idx+1]
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i] = &wire.TxOut{Value: -1}
		}
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}

	default:
		// SigHashAll: outputs committed in full, the common case.
	}

	if hashType&SigHashAnyOneCanPay != 0 {
		txCopy.TxIn = []*wire.TxIn{txCopy.TxIn[idx]}
	}

	var buf bytes.Buffer
	_ = txCopy.Serialize(&buf)

	var hashTypeBytes [4]byte
	binary.LittleEndian.PutUint32(hashTypeBytes[:], uint32(hashType))
	buf.Write(hashTypeBytes[:])

	return chainhash.HashH(buf.Bytes()), nil
}
