// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"math"

	"github.com/novacore/novad/chainhash"
)

// TxVersion is the format version presently written by this node.
const TxVersion = 1

// MaxTxInSequenceNum is the value a sequence number is set to when a
// transaction input's lock-time restriction no longer applies.
const MaxTxInSequenceNum uint32 = math.MaxUint32

// LockTimeThreshold is the boundary below which LockTime is interpreted as
// a block height, and at or above which it is interpreted as a Unix time
// (§4.2, "Finality").
const LockTimeThreshold = 500000000

// MaxTxInScriptSize and MaxTxOutScriptSize bound a single script's size
// independent of the blanket compact-size cap, mirroring the per-field
// limits the reference implementation applies while deserializing.
const (
	MaxTxInScriptSize  = 10000
	MaxTxOutScriptSize = 10000
)

// OutPoint defines a data type used to track previous transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// IsNull returns true if the outpoint refers to no output — the marker
// used by a coinbase's sole input.
func (o *OutPoint) IsNull() bool {
	return o.Index == math.MaxUint32 && o.Hash == (chainhash.Hash{})
}

func (o *OutPoint) serialize(w io.Writer) error {
	if _, err := w.Write(o.Hash[:]); err != nil {
		return err
	}
	return writeUint32(w, o.Index)
}

func (o *OutPoint) deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, o.Hash[:]); err != nil {
		return err
	}
	idx, err := readUint32(r)
	if err != nil {
		return err
	}
	o.Index = idx
	return nil
}

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

func (ti *TxIn) serialize(w io.Writer) error {
	if err := ti.PreviousOutPoint.serialize(w); err != nil {
		return err
	}
	if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}
	return writeUint32(w, ti.Sequence)
}

func (ti *TxIn) deserialize(r io.Reader) error {
	if err := ti.PreviousOutPoint.deserialize(r); err != nil {
		return err
	}
	script, err := ReadVarBytes(r, MaxTxInScriptSize, "TxIn.SignatureScript")
	if err != nil {
		return err
	}
	ti.SignatureScript = script
	seq, err := readUint32(r)
	if err != nil {
		return err
	}
	ti.Sequence = seq
	return nil
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// IsNull reports whether the output has already been spent (as
// represented inside a compact coin record) — a value of -1 marks a
// spent slot.
func (to *TxOut) IsNull() bool {
	return to.Value == -1
}

// IsEmpty reports whether the output carries neither value nor script,
// the shape expected of vout[0] in a coinstake transaction.
func (to *TxOut) IsEmpty() bool {
	return to.Value == 0 && len(to.PkScript) == 0
}

// SetNull marks the output spent in-place.
func (to *TxOut) SetNull() {
	to.Value = -1
	to.PkScript = nil
}

func (to *TxOut) serialize(w io.Writer) error {
	if err := writeInt64(w, to.Value); err != nil {
		return err
	}
	return WriteVarBytes(w, to.PkScript)
}

func (to *TxOut) deserialize(r io.Reader) error {
	v, err := readInt64(r)
	if err != nil {
		return err
	}
	to.Value = v
	script, err := ReadVarBytes(r, MaxTxOutScriptSize, "TxOut.PkScript")
	if err != nil {
		return err
	}
	to.PkScript = script
	return nil
}

// MsgTx defines a transaction: version, timestamp, ordered inputs,
// ordered outputs, and a lock-time (§3 "Transaction").
type MsgTx struct {
	Version  int32
	Time     uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a new transaction with default field values.
func NewMsgTx() *MsgTx {
	return &MsgTx{Version: TxVersion}
}

// Serialize encodes the transaction in the canonical wire format:
// version | timestamp | vin_compact_size | vin[] | vout_compact_size |
// vout[] | lock_time (§6).
func (msg *MsgTx) Serialize(w io.Writer) error {
	if err := writeUint32(w, uint32(msg.Version)); err != nil {
		return err
	}
	if err := writeUint32(w, msg.Time); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if err := ti.serialize(w); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		if err := to.serialize(w); err != nil {
			return err
		}
	}
	return writeUint32(w, msg.LockTime)
}

// Deserialize decodes a transaction previously written by Serialize.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	ver, err := readUint32(r)
	if err != nil {
		return err
	}
	msg.Version = int32(ver)

	t, err := readUint32(r)
	if err != nil {
		return err
	}
	msg.Time = t

	inCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	msg.TxIn = make([]*TxIn, inCount)
	for i := range msg.TxIn {
		ti := new(TxIn)
		if err := ti.deserialize(r); err != nil {
			return err
		}
		msg.TxIn[i] = ti
	}

	outCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	msg.TxOut = make([]*TxOut, outCount)
	for i := range msg.TxOut {
		to := new(TxOut)
		if err := to.deserialize(r); err != nil {
			return err
		}
		msg.TxOut[i] = to
	}

	lt, err := readUint32(r)
	if err != nil {
		return err
	}
	msg.LockTime = lt
	return nil
}

// Bytes returns the canonical serialization of the transaction.
func (msg *MsgTx) Bytes() []byte {
	var buf bytes.Buffer
	// Serialize never fails writing into a bytes.Buffer.
	_ = msg.Serialize(&buf)
	return buf.Bytes()
}

// TxHash returns the hash256 of the canonical serialization (§4.2).
func (msg *MsgTx) TxHash() chainhash.Hash {
	return chainhash.HashH(msg.Bytes())
}

// Copy returns a deep copy of the transaction, suitable for mutating in
// place while computing a signature hash preimage without disturbing the
// original.
func (msg *MsgTx) Copy() *MsgTx {
	txCopy := &MsgTx{
		Version:  msg.Version,
		Time:     msg.Time,
		LockTime: msg.LockTime,
		TxIn:     make([]*TxIn, len(msg.TxIn)),
		TxOut:    make([]*TxOut, len(msg.TxOut)),
	}
	for i, ti := range msg.TxIn {
		scriptCopy := make([]byte, len(ti.SignatureScript))
		copy(scriptCopy, ti.SignatureScript)
		txCopy.TxIn[i] = &TxIn{
			PreviousOutPoint: ti.PreviousOutPoint,
			SignatureScript:  scriptCopy,
			Sequence:         ti.Sequence,
		}
	}
	for i, to := range msg.TxOut {
		scriptCopy := make([]byte, len(to.PkScript))
		copy(scriptCopy, to.PkScript)
		txCopy.TxOut[i] = &TxOut{Value: to.Value, PkScript: scriptCopy}
	}
	return txCopy
}

// IsCoinBase reports whether msg is the block's subsidy-creating
// transaction: a single input whose prevout is null, and at least one
// output (§4.2).
func (msg *MsgTx) IsCoinBase() bool {
	return len(msg.TxIn) == 1 &&
		msg.TxIn[0].PreviousOutPoint.IsNull() &&
		len(msg.TxOut) >= 1
}

// IsCoinStake reports whether msg is a proof-of-stake generator
// transaction: at least one non-null input, at least two outputs, and an
// empty vout[0] (§4.2).
func (msg *MsgTx) IsCoinStake() bool {
	return len(msg.TxIn) >= 1 &&
		!msg.TxIn[0].PreviousOutPoint.IsNull() &&
		len(msg.TxOut) >= 2 &&
		msg.TxOut[0].IsEmpty()
}

// IsFinal reports whether the transaction is final at the given block
// height and block time, per the rules in §4.2: lock-time zero is always
// final; otherwise lock-time is interpreted as either a height or a Unix
// time depending on LockTimeThreshold, and every input must additionally
// carry MaxTxInSequenceNum.
func (msg *MsgTx) IsFinal(blockHeight int64, blockTime int64) bool {
	if msg.LockTime == 0 {
		return true
	}

	lockTime := int64(msg.LockTime)
	threshold := int64(LockTimeThreshold)
	if lockTime < threshold {
		if lockTime > blockHeight {
			return false
		}
	} else if lockTime > blockTime {
		return false
	}

	for _, txIn := range msg.TxIn {
		if txIn.Sequence != MaxTxInSequenceNum {
			return false
		}
	}
	return true
}
