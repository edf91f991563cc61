// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone_test

import (
	"fmt"
	"math/big"

	"github.com/novacore/novad/blockchain/standalone"
	"github.com/novacore/novad/chainhash"
)

// This example demonstrates how to convert the compact "bits" in a block
// header which represent the target difficulty to a big integer and
// display it using the typical hex notation.
func ExampleCompactToBig() {
	bits := uint32(453115903)
	targetDifficulty := standalone.CompactToBig(bits)

	fmt.Printf("%064x\n", targetDifficulty.Bytes())

	// Output:
	// 000000000001ffff000000000000000000000000000000000000000000000000
}

// This example demonstrates how to convert a target difficulty into the
// compact "bits" in a block header which represent that target
// difficulty.
func ExampleBigToCompact() {
	t := "000000000001ffff000000000000000000000000000000000000000000000000"
	targetDifficulty, success := new(big.Int).SetString(t, 16)
	if !success {
		fmt.Println("invalid target difficulty")
		return
	}
	bits := standalone.BigToCompact(targetDifficulty)

	fmt.Println(bits)

	// Output:
	// 453115903
}

// This example demonstrates calculating a merkle root from a slice of leaf
// hashes.
func ExampleCalcMerkleRoot() {
	leaves := make([]chainhash.Hash, 3)
	for i := range leaves {
		leaves[i] = chainhash.Hash{}
	}

	merkleRoot := standalone.CalcMerkleRoot(leaves)
	fmt.Printf("root length: %d bytes\n", len(merkleRoot))

	// Output:
	// root length: 32 bytes
}
