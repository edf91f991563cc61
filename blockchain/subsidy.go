// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/novacore/novad/chaincfg"
	"github.com/novacore/novad/dcrutil"
)

// coinUnit is the number of smallest indivisible units in one coin,
// mirrored from dcrutil.AmountAtomsPerCoin so every amount-bearing
// computation in the chain package - subsidy, coin-day weight, MAX_MONEY -
// divides by the exact same COIN that chaincfg's reward constants and
// dcrutil.Amount already agree on.
const coinUnit = dcrutil.AmountAtomsPerCoin

// CalcProofOfWorkSubsidy computes the block reward a coinbase transaction
// at the given height may create, on top of any transaction fees it also
// collects, halving every SubsidyHalvingInterval blocks the way Bitcoin-
// family coins do.
func CalcProofOfWorkSubsidy(height int64, fees int64, params *chaincfg.Params) int64 {
	subsidy := params.InitialProofOfWorkReward
	if params.SubsidyHalvingInterval > 0 {
		halvings := height / params.SubsidyHalvingInterval
		if halvings >= 64 {
			subsidy = 0
		} else {
			subsidy >>= uint(halvings)
		}
	}
	return subsidy + fees
}

// CalcProofOfStakeSubsidy computes the coin-age reward a coinstake
// transaction may mint for destroying the given amount of coin-age (output
// value in atoms times days held), at a
// flat annual rate of one percent, capped at the network's configured
// maximum per-block stake reward. Fees collected by the coinstake are
// added on top, mirroring how a proof-of-work coinbase folds in fees.
func CalcProofOfStakeSubsidy(coinAge int64, fees int64, params *chaincfg.Params) int64 {
	const daysPerYear = 365
	const annualRateBasisPoints = 100 // one percent, expressed in basis points of 1/10000

	subsidy := (coinAge * int64(annualRateBasisPoints)) / (daysPerYear * 10000)
	if subsidy > params.MaxProofOfStakeReward {
		subsidy = params.MaxProofOfStakeReward
	}
	if subsidy < 0 {
		subsidy = 0
	}
	return subsidy + fees
}
