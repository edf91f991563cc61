// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/novacore/novad/wire"
)

// SimNetParams returns the consensus parameters for the simulation
// network, used for driving many nodes through scripted scenarios on one
// machine.
func SimNetParams() *Params {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	genesis := newGenesisBlock(1401292357, 0x207fffff, 2, nil)

	return &Params{
		Name:        "simnet",
		Net:         wire.SimNet,
		DefaultPort: "19000",
		DNSSeeds:    []DNSSeed{},

		GenesisBlock: genesis,
		GenesisHash:  mustGenesisHash(genesis),

		PowLimit:     powLimit,
		PowLimitBits: 0x207fffff,

		StakeMinAge:        60,
		StakeMaxAge:        60 * 60,
		ModifierInterval:   60,
		StakeTargetSpacing: 10,
		TargetTimespan:     60 * 60,

		StakeModifierCheckpoints: map[int64]uint32{},
		Checkpoints:              []Checkpoint{},

		CoinbaseMaturity: 1,
		MaxBlockSize:     wire.MaxBlockSize,
		MaxBlockSigOps:   wire.MaxBlockSigOps,

		InitialProofOfWorkReward: 100 * 1e6,
		MaxProofOfStakeReward:    1 * 1e6,
		SubsidyHalvingInterval:   150,
		MinTxFee:                 10000,
		MinRelayTxFee:            2000,
		MinTxOutAmount:           10000,

		PremineLedger: []TokenPayout{},

		PubKeyHashAddrID: 0x3f,
		ScriptHashAddrID: 0x7b,
		PrivateKeyID:     0x64,
	}
}
