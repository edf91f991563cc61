// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxSize is the maximum allowed length for a compact-size-prefixed
// payload (vin/vout counts, script lengths, and the like). Anything
// claiming to be larger is a structural error, never a consensus one: the
// message cannot possibly have been produced honestly.
const MaxSize = 0x02000000

// ErrOversizedPayload is returned by ReadVarInt/ReadVarBytes when the
// decoded size exceeds MaxSize.
var ErrOversizedPayload = fmt.Errorf("serialization error: oversized payload")

// littleEndian is used throughout wire encoding; fixed-width fields are
// little-endian per §6 of the specification.
var littleEndian = binary.LittleEndian

// WriteVarInt serializes n using the Bitcoin-style compact-size encoding:
// a single byte for n < 0xfd, else a marker byte followed by 2, 4, or 8
// little-endian bytes.
func WriteVarInt(w io.Writer, n uint64) error {
	var buf [9]byte
	switch {
	case n < 0xfd:
		buf[0] = byte(n)
		_, err := w.Write(buf[:1])
		return err
	case n <= 0xffff:
		buf[0] = 0xfd
		littleEndian.PutUint16(buf[1:3], uint16(n))
		_, err := w.Write(buf[:3])
		return err
	case n <= 0xffffffff:
		buf[0] = 0xfe
		littleEndian.PutUint32(buf[1:5], uint32(n))
		_, err := w.Write(buf[:5])
		return err
	default:
		buf[0] = 0xff
		littleEndian.PutUint64(buf[1:9], n)
		_, err := w.Write(buf[:9])
		return err
	}
}

// ReadVarInt deserializes a compact-size-encoded integer, failing with
// ErrOversizedPayload if the decoded value exceeds MaxSize.
func ReadVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}

	var n uint64
	switch prefix[0] {
	case 0xff:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		n = littleEndian.Uint64(b[:])
	case 0xfe:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		n = uint64(littleEndian.Uint32(b[:]))
	case 0xfd:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		n = uint64(littleEndian.Uint16(b[:]))
	default:
		n = uint64(prefix[0])
	}

	if n > MaxSize {
		return 0, ErrOversizedPayload
	}
	return n, nil
}

// VarIntSerializeSize returns the number of bytes it would take to encode
// n as a compact-size integer.
func VarIntSerializeSize(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteVarBytes writes a compact-size length prefix followed by b.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadVarBytes reads a compact-size-prefixed byte slice, rejecting an
// advertised length over maxAllowed (a field-specific cap tighter than the
// blanket MaxSize, e.g. for a signature script).
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if n > maxAllowed {
		return nil, fmt.Errorf("%s: claimed length %d exceeds max %d", fieldName, n, maxAllowed)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	littleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return littleEndian.Uint32(b[:]), nil
}

func writeInt64(w io.Writer, v int64) error {
	var b [8]byte
	littleEndian.PutUint64(b[:], uint64(v))
	_, err := w.Write(b[:])
	return err
}

func readInt64(r io.Reader) (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int64(littleEndian.Uint64(b[:])), nil
}
