// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package compact implements the 32-bit "compact" encoding of arbitrary
// magnitude integers used both for block difficulty targets and for the
// PPCoin-lineage CBigNum arithmetic: size(8 bits) | mantissa(24 bits),
// where the high bit of the mantissa byte carries the sign.
package compact

import "math/big"

// ToBig converts a compact-encoded 32-bit value to a big.Int. A negative
// encoding (mantissa high bit set) produces a negative big.Int, matching
// CBigNum::SetCompact semantics.
func ToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := compact >> 24

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(uint(exponent)-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// FromBig converts a big.Int to its compact representation, incrementing
// the size byte whenever the top mantissa bit would otherwise be
// misinterpreted as the sign bit — the canonical-encoding invariant
// called out in §3/§8 of the specification.
func FromBig(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	isNegative := n.Sign() < 0
	mag := new(big.Int).Abs(n)
	bytes := mag.Bytes()
	size := uint32(len(bytes))

	var mantissa uint32
	switch {
	case size <= 3:
		mantissa = uint32(mag.Uint64()) << (8 * (3 - size))
	default:
		mantissa = uint32(bytes[0])<<16 | uint32(bytes[1])<<8 | uint32(bytes[2])
	}

	// If the high bit of the mantissa is set, it would be interpreted as
	// the sign bit, so shift one byte right and bump the size to stay
	// canonical.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		size++
	}

	result := size<<24 | mantissa
	if isNegative {
		result |= 0x00800000
	}
	return result
}

// MaxMagnitudeBytes is the largest magnitude, in bytes, that ToBig/FromBig
// round-trip exactly for non-negative values (§3 invariant).
const MaxMagnitudeBytes = 34
