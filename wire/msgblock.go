// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/novacore/novad/chainhash"
)

// BlockHeaderLen is the number of bytes in the serialized fixed-size
// portion of a block header (§3 "Block header").
const BlockHeaderLen = 80

// MaxBlockSize is the maximum allowed serialized block size in bytes
// (§6 consensus parameters).
const MaxBlockSize = 1000000

// MaxBlockSigOps is the per-block signature operation cap.
const MaxBlockSigOps = MaxBlockSize / 50

// BlockHeader defines information about a block: version, parent hash,
// Merkle root, timestamp, compact difficulty target, and nonce (§3).
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Serialize writes the fixed 80-byte header encoding.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := writeUint32(w, uint32(h.Version)); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	if err := writeUint32(w, h.Timestamp); err != nil {
		return err
	}
	if err := writeUint32(w, h.Bits); err != nil {
		return err
	}
	return writeUint32(w, h.Nonce)
}

// Deserialize reads a BlockHeader previously written by Serialize.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	ver, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Version = int32(ver)
	if _, err := io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}
	ts, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Timestamp = ts
	bits, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Bits = bits
	nonce, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Nonce = nonce
	return nil
}

// Bytes returns the canonical 80-byte header encoding.
func (h *BlockHeader) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(BlockHeaderLen)
	_ = h.Serialize(&buf)
	return buf.Bytes()
}

// BlockHash computes the scrypt proof-of-work hash of the header, per
// §4.1 ("scrypt_blockhash").
func (h *BlockHeader) BlockHash() (chainhash.Hash, error) {
	return chainhash.ScryptPoWHash(h.Bytes())
}

// MsgBlock defines a block: a header, the ordered transaction list, and,
// for proof-of-stake blocks, the coinstake signature (§6 wire format).
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
	// BlockSig is the coinstake input-0 signature for PoS blocks; it is
	// absent (nil) on proof-of-work blocks.
	BlockSig []byte
}

// Serialize writes the canonical wire encoding:
// header(80) | tx_compact_size | tx[] | block_sig_compact_size | block_sig[].
func (msg *MsgBlock) Serialize(w io.Writer) error {
	if err := msg.Header.Serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	return WriteVarBytes(w, msg.BlockSig)
}

// Deserialize reads a MsgBlock previously written by Serialize.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	if err := msg.Header.Deserialize(r); err != nil {
		return err
	}
	txCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	msg.Transactions = make([]*MsgTx, txCount)
	for i := range msg.Transactions {
		tx := NewMsgTx()
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		msg.Transactions[i] = tx
	}
	sig, err := ReadVarBytes(r, MaxTxInScriptSize, "MsgBlock.BlockSig")
	if err != nil {
		return err
	}
	msg.BlockSig = sig
	return nil
}

// Bytes returns the canonical serialization of the block.
func (msg *MsgBlock) Bytes() []byte {
	var buf bytes.Buffer
	_ = msg.Serialize(&buf)
	return buf.Bytes()
}

// IsProofOfStake reports whether the block's second transaction is a
// coinstake, the marker used throughout the index/validation layer to
// distinguish PoW from PoS blocks.
func (msg *MsgBlock) IsProofOfStake() bool {
	return len(msg.Transactions) > 1 && msg.Transactions[1].IsCoinStake()
}

// SerializeSize returns the number of bytes Serialize would write.
func (msg *MsgBlock) SerializeSize() int {
	return len(msg.Bytes())
}
