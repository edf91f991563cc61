// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

func mustGenesisHash(block *wire.MsgBlock) chainhash.Hash {
	hash, err := block.Header.BlockHash()
	if err != nil {
		panic(err)
	}
	return hash
}

// MainNetParams returns the consensus parameters for the main network.
func MainNetParams() *Params {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	genesis := newGenesisBlock(1355968914, 0x1d00ffff, 2022702499, mainNetPremine)

	return &Params{
		Name:        "mainnet",
		Net:         wire.MainNet,
		DefaultPort: "9745",
		DNSSeeds: []DNSSeed{
			{Host: "seed1.novacore.example", HasFiltering: true},
			{Host: "seed2.novacore.example", HasFiltering: true},
		},

		GenesisBlock: genesis,
		GenesisHash:  mustGenesisHash(genesis),

		PowLimit:     powLimit,
		PowLimitBits: 0x1d00ffff,

		StakeMinAge:        60 * 60 * 8,       // 8 hours
		StakeMaxAge:        60 * 60 * 24 * 90, // 90 days
		ModifierInterval:   6 * 60 * 60,       // 6 hours
		StakeTargetSpacing: 60,                // 1 minute
		TargetTimespan:     7 * 24 * 60 * 60,  // 1 week

		StakeModifierCheckpoints: map[int64]uint32{
			0:     0x0e00670b,
			9690:  0x97dcdafa,
			12661: 0x5d84115d,
			37092: 0xd230afcc,
			44200: 0x05370164,
			65000: 0xc8e7be6a,
			68600: 0x73a8cc4c,
			92161: 0xe21a911a,
			98661: 0xd20c44d4,
		},

		Checkpoints: []Checkpoint{},

		CoinbaseMaturity: 60,
		MaxBlockSize:     wire.MaxBlockSize,
		MaxBlockSigOps:   wire.MaxBlockSigOps,

		InitialProofOfWorkReward: 100 * 1e6, // 100 coins, 1e6 base units
		MaxProofOfStakeReward:    1 * 1e6,
		SubsidyHalvingInterval:   210000,
		MinTxFee:                 10000,
		MinRelayTxFee:            2000,
		MinTxOutAmount:           10000,

		PremineLedger: mainNetPremine,

		PubKeyHashAddrID: 0x37,
		ScriptHashAddrID: 0x55,
		PrivateKeyID:     0x01,
	}
}
