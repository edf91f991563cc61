// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"io"

	"github.com/novacore/novad/wire"
)

// TxInUndo carries what's needed to restore a single spent output on
// disconnect: the output itself, and, when the spend emptied the owning
// coin record entirely, the metadata that record carried (§4.4 "Undo
// data").
type TxInUndo struct {
	Out       wire.TxOut
	HasExtra  bool
	CoinBase  bool
	CoinStake bool
	Version   int32
	Height    int64
	Time      uint32
	BlockTime uint32
	TxIndex   uint32
}

func (u *TxInUndo) serialize(w io.Writer) error {
	var code uint64
	if u.HasExtra {
		code = 1
	}
	if err := wire.WriteVarInt(w, code); err != nil {
		return err
	}
	if u.HasExtra {
		var flags uint64
		if u.CoinBase {
			flags |= 1
		}
		if u.CoinStake {
			flags |= 2
		}
		if err := wire.WriteVarInt(w, flags); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, uint64(u.Version)); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, uint64(u.Height)); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, uint64(u.Time)); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, uint64(u.BlockTime)); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, uint64(u.TxIndex)); err != nil {
			return err
		}
	}
	return compressTxOut(w, &u.Out)
}

func (u *TxInUndo) deserialize(r io.Reader) error {
	code, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	u.HasExtra = code != 0

	if u.HasExtra {
		flags, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		u.CoinBase = flags&1 != 0
		u.CoinStake = flags&2 != 0

		version, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		u.Version = int32(version)

		height, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		u.Height = int64(height)

		t, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		u.Time = uint32(t)

		bt, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		u.BlockTime = uint32(bt)

		txIdx, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		u.TxIndex = uint32(txIdx)
	}

	out, err := decompressTxOut(r)
	if err != nil {
		return err
	}
	u.Out = *out
	return nil
}

// TxUndo carries the undo records for every spent input of one
// transaction, in input order.
type TxUndo struct {
	Inputs []TxInUndo
}

func (u *TxUndo) serialize(w io.Writer) error {
	if err := wire.WriteVarInt(w, uint64(len(u.Inputs))); err != nil {
		return err
	}
	for i := range u.Inputs {
		if err := u.Inputs[i].serialize(w); err != nil {
			return err
		}
	}
	return nil
}

func (u *TxUndo) deserialize(r io.Reader) error {
	n, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	u.Inputs = make([]TxInUndo, n)
	for i := range u.Inputs {
		if err := u.Inputs[i].deserialize(r); err != nil {
			return err
		}
	}
	return nil
}

// BlockUndo carries every transaction's undo data for one block, indexed
// by the transaction's position in the block, so disconnectBlock can walk
// it to restore the UTXO view exactly as it stood before the block was
// connected.
type BlockUndo struct {
	TxUndo []TxUndo
}

// Serialize writes the block's aggregate undo record.
func (b *BlockUndo) Serialize(w io.Writer) error {
	if err := wire.WriteVarInt(w, uint64(len(b.TxUndo))); err != nil {
		return err
	}
	for i := range b.TxUndo {
		if err := b.TxUndo[i].serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a BlockUndo previously written by Serialize.
func (b *BlockUndo) Deserialize(r io.Reader) error {
	n, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	b.TxUndo = make([]TxUndo, n)
	for i := range b.TxUndo {
		if err := b.TxUndo[i].deserialize(r); err != nil {
			return err
		}
	}
	return nil
}
