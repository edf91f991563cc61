// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// CompressAmount maps a coin amount to a shorter varint-friendly encoding
// for values that are divisible by a large power of ten, as used when
// persisting a coin record's outputs. The mapping is a bijection on
// uint64; DecompressAmount is its exact inverse.
//
// Amounts are split as n = x * 10^e with x not divisible by 10 (for
// x != 0), and encoded as a function of x's last digit and e so that
// trailing decimal zeros — extremely common in realistic amounts — cost
// almost nothing.
func CompressAmount(amount uint64) uint64 {
	if amount == 0 {
		return 0
	}
	e := uint64(0)
	for amount%10 == 0 && e < 9 {
		amount /= 10
		e++
	}
	if e < 9 {
		d := amount % 10
		amount /= 10
		return 1 + (amount*9+d-1)*10 + e
	}
	return 1 + (amount-1)*10 + 9
}

// DecompressAmount is the exact inverse of CompressAmount.
func DecompressAmount(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	x--
	e := x % 10
	x /= 10
	var n uint64
	if e < 9 {
		d := x%9 + 1
		x /= 9
		n = x*10 + d
	} else {
		n = x + 1
	}
	for e > 0 {
		n *= 10
		e--
	}
	return n
}
