// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/novacore/novad/wire"
)

// TestNetParams returns the consensus parameters for the test network.
func TestNetParams() *Params {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 240), bigOne)

	genesis := newGenesisBlock(1355968914, 0x1e0fffff, 216178, nil)

	return &Params{
		Name:        "testnet",
		Net:         wire.TestNet,
		DefaultPort: "19745",
		DNSSeeds: []DNSSeed{
			{Host: "testnet-seed.novacore.example", HasFiltering: true},
		},

		GenesisBlock: genesis,
		GenesisHash:  mustGenesisHash(genesis),

		PowLimit:     powLimit,
		PowLimitBits: 0x1e0fffff,

		StakeMinAge:        60 * 60,          // 1 hour
		StakeMaxAge:        60 * 60 * 24 * 7, // 1 week
		ModifierInterval:   60 * 60,          // 1 hour
		StakeTargetSpacing: 60,
		TargetTimespan:     24 * 60 * 60,

		StakeModifierCheckpoints: map[int64]uint32{
			0: 0x0e00670b,
		},

		Checkpoints: []Checkpoint{},

		CoinbaseMaturity: 10,
		MaxBlockSize:     wire.MaxBlockSize,
		MaxBlockSigOps:   wire.MaxBlockSigOps,

		InitialProofOfWorkReward: 100 * 1e6,
		MaxProofOfStakeReward:    1 * 1e6,
		SubsidyHalvingInterval:   210000,
		MinTxFee:                 10000,
		MinRelayTxFee:            2000,
		MinTxOutAmount:           10000,

		PremineLedger: []TokenPayout{},

		PubKeyHashAddrID: 0x6f,
		ScriptHashAddrID: 0xc4,
		PrivateKeyID:     0xef,
	}
}
