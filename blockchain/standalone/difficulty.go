// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package standalone houses the pieces of consensus validation that can be
// evaluated without reference to the block index or UTXO view: compact
// difficulty conversions and Merkle root calculation.
package standalone

import (
	"math/big"

	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/primitives/compact"
	"github.com/novacore/novad/primitives/merkle"
)

// CompactToBig converts a compact-encoded difficulty target to its full
// big.Int representation.
func CompactToBig(bits uint32) *big.Int {
	return compact.ToBig(bits)
}

// BigToCompact converts a difficulty target to its compact representation,
// canonicalizing the sign bit per §3/§8 of the specification.
func BigToCompact(target *big.Int) uint32 {
	return compact.FromBig(target)
}

// CalcMerkleRoot calculates the Merkle root over the given leaf hashes and
// returns it, re-exported here for callers that otherwise only need
// context-free block header arithmetic.
func CalcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	return merkle.CalcMerkleRoot(leaves)
}

// CheckProofOfWork reports whether hash, interpreted as a little-endian 256
// bit integer, is numerically at or below the target represented by bits,
// and that target does not exceed powLimit.
func CheckProofOfWork(hash chainhash.Hash, bits uint32, powLimit *big.Int) bool {
	target := CompactToBig(bits)
	if target.Sign() <= 0 || target.Cmp(powLimit) > 0 {
		return false
	}

	var reversed [chainhash.HashSize]byte
	for i, b := range hash {
		reversed[chainhash.HashSize-1-i] = b
	}
	hashNum := new(big.Int).SetBytes(reversed[:])
	return hashNum.Cmp(target) <= 0
}
