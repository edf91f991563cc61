// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the consensus parameters for each of this
// node's supported networks: mainnet, testnet, regnet, and simnet.
package chaincfg

import (
	"math/big"

	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

// DNSSeed identifies a DNS seed and whether it supports filtering by
// service bit.
type DNSSeed struct {
	Host         string
	HasFiltering bool
}

// Checkpoint identifies a block hash a candidate chain must match at a
// given height in order to be accepted, pruning the reorg search space
// and guarding against a deep history rewrite.
type Checkpoint struct {
	Height int64
	Hash   chainhash.Hash
}

// TokenPayout is one output of the premine ledger paid out in the
// network's first block, the PPCoin-style in-band distribution a
// network can use instead of a founder reward transaction.
type TokenPayout struct {
	PubKeyHash [20]byte
	Amount     int64
}

// Params defines the consensus rules and genesis parameters that
// distinguish one network from another.
type Params struct {
	Name        string
	Net         wire.CurrentNetwork
	DefaultPort string
	DNSSeeds    []DNSSeed

	// Genesis block.
	GenesisBlock *wire.MsgBlock
	GenesisHash  chainhash.Hash

	// Proof of work.
	PowLimit     *big.Int
	PowLimitBits uint32

	// Proof of stake (§4.2 "Proof of stake kernel").
	StakeMinAge        int64
	StakeMaxAge        int64
	ModifierInterval   int64
	StakeTargetSpacing int64
	TargetTimespan     int64

	// Hardened stake modifier checksum checkpoints, keyed by height.
	StakeModifierCheckpoints map[int64]uint32

	// Block checkpoints, oldest to newest.
	Checkpoints []Checkpoint

	// Maturity and size limits.
	CoinbaseMaturity int64
	MaxBlockSize     uint32
	MaxBlockSigOps   uint32

	// Subsidy.
	InitialProofOfWorkReward  int64
	MaxProofOfStakeReward     int64
	SubsidyHalvingInterval    int64
	MinTxFee                  int64
	MinRelayTxFee             int64
	MinTxOutAmount            int64

	// Premine ledger paid out in the genesis coinbase.
	PremineLedger []TokenPayout

	// Address encoding.
	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte
}

var bigOne = big.NewInt(1)
