// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"io"

	"github.com/novacore/novad/wire"
)

// CoinEntry is the compact unspent-transaction-output record stored per
// txid (§4.3 "Coin records"): it tracks which outputs of a transaction
// remain unspent, trimming spent outputs off the tail as they're consumed.
type CoinEntry struct {
	CoinBase  bool
	CoinStake bool
	Version   int32
	Height    int64
	Time      uint32
	BlockTime uint32
	TxIndex   uint32
	Outs      []*wire.TxOut
}

// NewCoinEntry builds a CoinEntry from the transaction that created it.
// txIndex is the transaction's position within its containing block, fed
// to the proof-of-stake kernel hash as the funding output's in-block
// offset whenever this entry is later spent as a coinstake kernel input.
func NewCoinEntry(tx *wire.MsgTx, height int64, blockTime uint32, txIndex uint32) *CoinEntry {
	return &CoinEntry{
		CoinBase:  tx.IsCoinBase(),
		CoinStake: tx.IsCoinStake(),
		Version:   tx.Version,
		Height:    height,
		Time:      tx.Time,
		BlockTime: blockTime,
		TxIndex:   txIndex,
		Outs:      append([]*wire.TxOut(nil), tx.TxOut...),
	}
}

// Cleanup drops spent or empty outputs trailing at the end of Outs, shrinking the
// record whenever possible.
func (e *CoinEntry) Cleanup() {
	for len(e.Outs) > 0 {
		last := e.Outs[len(e.Outs)-1]
		if last.IsNull() || last.IsEmpty() {
			e.Outs = e.Outs[:len(e.Outs)-1]
			continue
		}
		break
	}
}

// IsAvailable reports whether output pos is still unspent.
func (e *CoinEntry) IsAvailable(pos uint32) bool {
	return int(pos) < len(e.Outs) && !e.Outs[pos].IsNull()
}

// IsPruned reports whether every output has been spent, the point at which
// the record can be dropped from storage entirely.
func (e *CoinEntry) IsPruned() bool {
	if len(e.Outs) == 0 {
		return true
	}
	for _, out := range e.Outs {
		if !out.IsNull() {
			return false
		}
	}
	return true
}

// Spend marks output pos spent and returns the undo record needed to
// reverse the spend, or ok=false if pos was already spent or out of range.
func (e *CoinEntry) Spend(pos uint32) (undo TxInUndo, ok bool) {
	if int(pos) >= len(e.Outs) || e.Outs[pos].IsNull() {
		return TxInUndo{}, false
	}

	undo = TxInUndo{Out: *e.Outs[pos]}
	e.Outs[pos].SetNull()
	e.Cleanup()

	if len(e.Outs) == 0 {
		undo.HasExtra = true
		undo.Height = e.Height
		undo.Time = e.Time
		undo.BlockTime = e.BlockTime
		undo.TxIndex = e.TxIndex
		undo.CoinBase = e.CoinBase
		undo.CoinStake = e.CoinStake
		undo.Version = e.Version
	}
	return undo, true
}

// calcMaskSize computes the number of bitmask bytes and the number of
// non-zero bitmask bytes among them, following the reference layout in
// which the availability of outputs 0 and 1 is folded into the header code
// and only outputs from index 2 onward need a bitmask.
func (e *CoinEntry) calcMaskSize() (nBytes, nNonzeroBytes int) {
	lastUsed := 0
	for b := 0; 2+b*8 < len(e.Outs); b++ {
		zero := true
		for i := 0; i < 8 && 2+b*8+i < len(e.Outs); i++ {
			if !e.Outs[2+b*8+i].IsNull() {
				zero = false
			}
		}
		if !zero {
			lastUsed = b + 1
			nNonzeroBytes++
		}
	}
	return lastUsed, nNonzeroBytes
}

// Serialize writes the compact coin record: version, flags, and either the
// pruned-tail fields alone or the full spentness bitmask plus compressed
// outputs.
func (e *CoinEntry) Serialize(w io.Writer) error {
	pruned := e.IsPruned()

	var flags uint64
	if e.CoinBase {
		flags |= 1
	}
	if e.CoinStake {
		flags |= 2
	}
	if pruned {
		flags |= 4
	}

	if err := wire.WriteVarInt(w, uint64(e.Version)); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, flags); err != nil {
		return err
	}

	if !pruned {
		maskSize, maskCode := e.calcMaskSize()
		first := len(e.Outs) > 0 && !e.Outs[0].IsNull()
		second := len(e.Outs) > 1 && !e.Outs[1].IsNull()

		adj := 0
		if !first && !second {
			adj = 1
		}
		code := 8*(maskCode-adj)
		if first {
			code += 2
		}
		if second {
			code += 4
		}
		if err := wire.WriteVarInt(w, uint64(code)); err != nil {
			return err
		}

		for b := 0; b < maskSize; b++ {
			var avail byte
			for i := 0; i < 8 && 2+b*8+i < len(e.Outs); i++ {
				if !e.Outs[2+b*8+i].IsNull() {
					avail |= 1 << uint(i)
				}
			}
			if _, err := w.Write([]byte{avail}); err != nil {
				return err
			}
		}

		for _, out := range e.Outs {
			if out.IsNull() {
				continue
			}
			if err := compressTxOut(w, out); err != nil {
				return err
			}
		}
	}

	if err := wire.WriteVarInt(w, uint64(e.Height)); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, uint64(e.Time)); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, uint64(e.BlockTime)); err != nil {
		return err
	}
	return wire.WriteVarInt(w, uint64(e.TxIndex))
}

// Deserialize reads a CoinEntry previously written by Serialize.
func (e *CoinEntry) Deserialize(r io.Reader) error {
	version, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.Version = int32(version)

	flags, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.CoinBase = flags&1 != 0
	e.CoinStake = flags&2 != 0
	pruned := flags&4 != 0

	if !pruned {
		code, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		avail := []bool{code&2 != 0, code&4 != 0}
		maskCode := int(code/8) + boolToInt(code&6 == 0)

		for maskCode > 0 {
			var b [1]byte
			if _, err := io.ReadFull(r, b[:]); err != nil {
				return err
			}
			for p := 0; p < 8; p++ {
				avail = append(avail, b[0]&(1<<uint(p)) != 0)
			}
			if b[0] != 0 {
				maskCode--
			}
		}

		e.Outs = make([]*wire.TxOut, len(avail))
		for i, a := range avail {
			if a {
				out, err := decompressTxOut(r)
				if err != nil {
					return err
				}
				e.Outs[i] = out
			} else {
				e.Outs[i] = &wire.TxOut{Value: -1}
			}
		}
	}

	height, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.Height = int64(height)

	t, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.Time = uint32(t)

	bt, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.BlockTime = uint32(bt)

	txIdx, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.TxIndex = uint32(txIdx)

	e.Cleanup()
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
