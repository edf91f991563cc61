// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"fmt"
	"io"

	"github.com/novacore/novad/txscript"
	"github.com/novacore/novad/wire"
)

// Special script types recognized by the compressor so that the extremely
// common pay-to-pubkey-hash / pay-to-script-hash / pay-to-pubkey outputs
// can be stored as a 20/32-byte payload instead of their full script.
const (
	scriptTypePubKeyHash = 0
	scriptTypeScriptHash = 1
	// scriptTypePubKeyEven and scriptTypePubKeyOdd (2 and 3) are handled
	// inline below since the type byte doubles as the compressed pubkey's
	// sign byte.
)

// compressScript encodes pkScript using the special-cased representation
// when it matches one of the standard templates, or otherwise a raw
// encoding: the script length plus the four special types as one varint,
// then the script bytes.
func compressScript(w io.Writer, pkScript []byte) error {
	if h, ok := txscript.ExtractPubKeyHash(pkScript); ok {
		return writeSpecial(w, scriptTypePubKeyHash, h)
	}
	if h, ok := txscript.ExtractScriptHash(pkScript); ok {
		return writeSpecial(w, scriptTypeScriptHash, h)
	}
	if pk, typ, ok := txscript.ExtractCompressedPubKey(pkScript); ok {
		return writeSpecial(w, typ, pk[1:])
	}

	// Generic fallback: nSpecialScripts (4) + actual length, then the raw
	// bytes, mirroring the original CScriptCompressor "too big" path.
	if err := wire.WriteVarInt(w, uint64(len(pkScript)+4)); err != nil {
		return err
	}
	_, err := w.Write(pkScript)
	return err
}

func writeSpecial(w io.Writer, typ byte, payload []byte) error {
	if err := wire.WriteVarInt(w, uint64(typ)); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// decompressScript is the inverse of compressScript.
func decompressScript(r io.Reader) ([]byte, error) {
	code, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	switch code {
	case scriptTypePubKeyHash:
		var h [20]byte
		if _, err := io.ReadFull(r, h[:]); err != nil {
			return nil, err
		}
		return txscript.PayToPubKeyHashScript(h[:]), nil
	case scriptTypeScriptHash:
		var h [20]byte
		if _, err := io.ReadFull(r, h[:]); err != nil {
			return nil, err
		}
		return txscript.PayToScriptHashScript(h[:]), nil
	case 2, 3:
		var pk [32]byte
		if _, err := io.ReadFull(r, pk[:]); err != nil {
			return nil, err
		}
		full := append([]byte{byte(code)}, pk[:]...)
		return txscript.PayToCompressedPubKeyScript(full), nil
	default:
		if code < 4 {
			return nil, fmt.Errorf("compress: unknown special script type %d", code)
		}
		n := code - 4
		script := make([]byte, n)
		if _, err := io.ReadFull(r, script); err != nil {
			return nil, err
		}
		return script, nil
	}
}

// compressTxOut serializes an output using the compressed-amount varint
// plus compressed script encoding used by coin records (§4.2).
func compressTxOut(w io.Writer, out *wire.TxOut) error {
	compressed := wire.CompressAmount(uint64(out.Value))
	if err := wire.WriteVarInt(w, compressed); err != nil {
		return err
	}
	return compressScript(w, out.PkScript)
}

// decompressTxOut is the inverse of compressTxOut.
func decompressTxOut(r io.Reader) (*wire.TxOut, error) {
	amt, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	script, err := decompressScript(r)
	if err != nil {
		return nil, err
	}
	return &wire.TxOut{
		Value:    int64(wire.DecompressAmount(amt)),
		PkScript: script,
	}, nil
}

// txOutCompressedSize returns the number of bytes compressTxOut would
// write, without actually performing the write.
func txOutCompressedSize(out *wire.TxOut) int {
	var buf bytes.Buffer
	_ = compressTxOut(&buf, out)
	return buf.Len()
}
