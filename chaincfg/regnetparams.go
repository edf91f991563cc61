// Copyright (c) 2018-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/novacore/novad/wire"
)

// RegNetParams returns the consensus parameters for the regression test
// network, tuned for fast, deterministic local chains: a trivial proof
// of work limit and no hardened stake modifier checkpoints.
func RegNetParams() *Params {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	genesis := newGenesisBlock(1295955175, 0x207fffff, 0, nil)

	return &Params{
		Name:        "regnet",
		Net:         wire.RegNet,
		DefaultPort: "18845",
		DNSSeeds:    []DNSSeed{},

		GenesisBlock: genesis,
		GenesisHash:  mustGenesisHash(genesis),

		PowLimit:     powLimit,
		PowLimitBits: 0x207fffff,

		StakeMinAge:        60, // 1 minute
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

		PubKeyHashAddrID: 0x6f,
		ScriptHashAddrID: 0xc4,
		PrivateKeyID:     0xef,
	}
}
