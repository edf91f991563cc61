// Copyright (c) 2012-2013 The PPCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mpi implements the big-endian, OpenSSL-style "MPI" big-number
// codec inherited from the PPCoin/NovaCoin CBigNum serialization: a 4-byte
// big-endian length prefix followed by the magnitude, most-significant byte
// first, with the top bit of the first magnitude byte reserved for sign.
package mpi

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// Encode serializes n in MPI form.
func Encode(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0, 0, 0, 0}
	}

	isNegative := n.Sign() < 0
	mag := new(big.Int).Abs(n).Bytes()

	// A leading 0x00 byte is inserted when the magnitude's top bit is
	// already set, so it isn't mistaken for the sign bit.
	needsPad := mag[0]&0x80 != 0
	size := len(mag)
	if needsPad {
		size++
	}

	out := make([]byte, 4+size)
	binary.BigEndian.PutUint32(out[0:4], uint32(size))
	copy(out[4+size-len(mag):], mag)
	if isNegative {
		out[4] |= 0x80
	}
	return out
}

// Decode parses an MPI-encoded big number.
func Decode(b []byte) (*big.Int, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("mpi: input too short: %d bytes", len(b))
	}
	size := binary.BigEndian.Uint32(b[0:4])
	if uint32(len(b)-4) != size {
		return nil, fmt.Errorf("mpi: length prefix %d does not match payload %d", size, len(b)-4)
	}
	if size == 0 {
		return big.NewInt(0), nil
	}

	mag := make([]byte, size)
	copy(mag, b[4:])
	isNegative := mag[0]&0x80 != 0
	mag[0] &^= 0x80

	n := new(big.Int).SetBytes(mag)
	if isNegative {
		n.Neg(n)
	}
	return n, nil
}
