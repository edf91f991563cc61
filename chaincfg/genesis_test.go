// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestGenesisBlocks checks that each network's genesis block serializes
// without error and that its claimed hash matches what the header
// actually hashes to.
func TestGenesisBlocks(t *testing.T) {
	networks := []struct {
		name   string
		params *Params
	}{
		{"mainnet", MainNetParams()},
		{"testnet", TestNetParams()},
		{"regnet", RegNetParams()},
		{"simnet", SimNetParams()},
	}

	for _, n := range networks {
		var buf bytes.Buffer
		if err := n.params.GenesisBlock.Serialize(&buf); err != nil {
			t.Fatalf("%s: serialize genesis block: %v", n.name, err)
		}

		hash, err := n.params.GenesisBlock.Header.BlockHash()
		if err != nil {
			t.Fatalf("%s: hash genesis header: %v", n.name, err)
		}
		if !hash.IsEqual(&n.params.GenesisHash) {
			t.Fatalf("%s: genesis hash mismatch - got %v, want %v",
				n.name, spew.Sdump(hash), spew.Sdump(n.params.GenesisHash))
		}

		if len(n.params.GenesisBlock.Transactions) != 1 {
			t.Fatalf("%s: genesis block must have exactly one transaction", n.name)
		}
	}
}
