// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import "golang.org/x/crypto/scrypt"

// Consensus-critical scrypt parameters for the block header proof-of-work
// hash. These are fixed by the protocol and must never change: altering
// them changes every block hash in the chain.
const (
	scryptN = 1024
	scryptR = 1
	scryptP = 1
)

// ScryptPoWHash computes the memory-hard proof-of-work hash of a serialized
// 80-byte block header. Unlike HashH, this is deliberately expensive to
// compute, which is the point: it is the quantity miners must search for a
// value below the block's difficulty target.
func ScryptPoWHash(header []byte) (Hash, error) {
	digest, err := scrypt.Key(header, header, scryptN, scryptR, scryptP, HashSize)
	if err != nil {
		return Hash{}, err
	}
	var h Hash
	copy(h[:], digest)
	return h, nil
}
