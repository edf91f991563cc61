// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/novacore/novad/blockchain/stake"
	"github.com/novacore/novad/blockchain/standalone"
	"github.com/novacore/novad/chaincfg"
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/primitives/merkle"
	"github.com/novacore/novad/txscript"
	"github.com/novacore/novad/wire"
)

// MaxTimeOffsetSeconds is how far a block's timestamp may sit in the
// future of the validating node's own clock before it's rejected outright,
// mirroring the two-hour drift tolerance the reference client grants for
// clock skew across the network.
const MaxTimeOffsetSeconds = 2 * 60 * 60

// checkBlockSanity performs the context-free checks a block must satisfy
// regardless of where it connects to the chain: structural validity,
// proof of work (for PoW blocks), transaction well-formedness, and the
// merkle root.
func checkBlockSanity(block *wire.MsgBlock, params *chaincfg.Params, now time.Time) error {
	size := block.SerializeSize()
	if uint32(size) > params.MaxBlockSize {
		return ruleError(ErrBlockTooBig, fmt.Sprintf(
			"block size of %d bytes exceeds max allowed %d", size, params.MaxBlockSize))
	}

	if len(block.Transactions) == 0 {
		return ruleError(ErrNoTransactions, "block has no transactions")
	}

	if !block.Transactions[0].IsCoinBase() {
		return ruleError(ErrFirstTxNotCoinbase, "first transaction is not a coinbase")
	}
	for _, tx := range block.Transactions[1:] {
		if tx.IsCoinBase() {
			return ruleError(ErrMultipleCoinbases, "block contains a second coinbase")
		}
	}

	isPoS := block.IsProofOfStake()
	if isPoS {
		if len(block.Transactions) < 2 || !block.Transactions[1].IsCoinStake() {
			return ruleError(ErrSecondTxNotCoinstake,
				"proof-of-stake block's second transaction is not a coinstake")
		}
		for i, tx := range block.Transactions {
			if i != 1 && tx.IsCoinStake() {
				return ruleError(ErrMultipleCoinstakes, "block contains a second coinstake")
			}
		}
		if len(block.BlockSig) == 0 {
			return ruleError(ErrMissingBlockSignature,
				"proof-of-stake block carries no kernel signature")
		}
	} else {
		for _, tx := range block.Transactions {
			if tx.IsCoinStake() {
				return ruleError(ErrSecondTxNotCoinstake,
					"proof-of-work block contains a coinstake transaction")
			}
		}
	}

	maxTime := uint32(now.Add(MaxTimeOffsetSeconds * time.Second).Unix())
	if block.Header.Timestamp > maxTime {
		return ruleError(ErrTimeTooNew, "block timestamp too far in the future")
	}

	seen := make(map[chainhash.Hash]bool, len(block.Transactions))
	var totalSigOps uint32
	for _, tx := range block.Transactions {
		if err := checkTransactionSanity(tx); err != nil {
			return err
		}
		h := tx.TxHash()
		if seen[h] {
			return ruleError(ErrDuplicateTx, "block contains a duplicate transaction")
		}
		seen[h] = true

		for _, txOut := range tx.TxOut {
			totalSigOps += uint32(txscript.GetSigOpCount(txOut.PkScript))
		}
	}
	if totalSigOps > params.MaxBlockSigOps {
		return ruleError(ErrTooManySigOps, "block exceeds the maximum signature operation count")
	}

	leaves := make([]chainhash.Hash, len(block.Transactions))
	for i, tx := range block.Transactions {
		leaves[i] = tx.TxHash()
	}
	root := merkle.CalcMerkleRoot(leaves)
	if root != block.Header.MerkleRoot {
		return ruleError(ErrBadMerkleRoot, "computed merkle root does not match header")
	}

	if !isPoS {
		hash, err := block.Header.BlockHash()
		if err != nil {
			return err
		}
		if !standalone.CheckProofOfWork(hash, block.Header.Bits, params.PowLimit) {
			return ruleError(ErrBadProofOfWork, "block hash does not satisfy claimed difficulty")
		}
	}

	return nil
}

// MaxMoney is the maximum number of atoms any single quantity of coin may
// ever represent: 2e9 whole coins, the supply ceiling no output, no total
// transaction value, and no accumulated money supply may exceed.
const MaxMoney = 2e9 * coinUnit

// checkTransactionSanity performs context-free checks on a single
// transaction: it has inputs and outputs, no duplicate or null inputs
// (outside a coinbase), and no out-of-range output values.
func checkTransactionSanity(tx *wire.MsgTx) error {
	if len(tx.TxIn) == 0 {
		return ruleError(ErrNoTxInputs, "transaction has no inputs")
	}
	if len(tx.TxOut) == 0 {
		return ruleError(ErrNoTxOutputs, "transaction has no outputs")
	}

	var totalOut int64
	for _, txOut := range tx.TxOut {
		if txOut.Value < 0 {
			return ruleError(ErrBadTxOutValue, "transaction output value is negative")
		}
		if txOut.Value > MaxMoney {
			return ruleError(ErrBadTxOutValue, "transaction output value exceeds the maximum money supply")
		}
		totalOut += txOut.Value
		if totalOut < 0 || totalOut > MaxMoney {
			return ruleError(ErrBadTxOutValue, "transaction output value overflows total")
		}
	}

	if tx.IsCoinBase() {
		scriptLen := len(tx.TxIn[0].SignatureScript)
		if scriptLen < 2 || scriptLen > 100 {
			return ruleError(ErrBadCoinbaseScriptLen,
				"coinbase signature script length out of range")
		}
		return nil
	}

	seen := make(map[wire.OutPoint]bool, len(tx.TxIn))
	for _, txIn := range tx.TxIn {
		if txIn.PreviousOutPoint.Hash == (chainhash.Hash{}) {
			return ruleError(ErrBadTxInput, "non-coinbase transaction input refers to null outpoint")
		}
		if seen[txIn.PreviousOutPoint] {
			return ruleError(ErrDuplicateTxInputs, "transaction spends the same outpoint twice")
		}
		seen[txIn.PreviousOutPoint] = true
	}

	return nil
}

// checkBlockContext performs the checks that depend on where the block
// connects to the chain: timestamp ordering against its ancestors and
// difficulty/target agreement with the retarget rule.
func checkBlockContext(block *wire.MsgBlock, prevNode *blockNode, params *chaincfg.Params) error {
	if prevNode != nil {
		medianTime := prevNode.medianTimePast()
		if int64(block.Header.Timestamp) <= medianTime {
			return ruleError(ErrTimeTooOld,
				"block timestamp is not after the median of the preceding blocks")
		}
	}

	wantBits := calcNextRequiredDifficulty(prevNode, block.IsProofOfStake(), params)
	if block.Header.Bits != wantBits {
		return ruleError(ErrBadDifficultyBits,
			"block difficulty bits do not match the required retarget value")
	}

	return nil
}

// calcNextRequiredDifficulty implements the continuous per-block retarget
// rule: it walks back to the most recent prior block of the same kind
// (proof of work or proof of stake, each retargeting against its own
// difficulty chain) and nudges the target toward the actual spacing
// observed between that block and its own predecessor of the same kind.
func calcNextRequiredDifficulty(prevNode *blockNode, proofOfStake bool, params *chaincfg.Params) uint32 {
	if prevNode == nil {
		return params.PowLimitBits
	}

	last := mostRecentOfKind(prevNode, proofOfStake)
	if last == nil {
		return params.PowLimitBits
	}
	prevOfKind := mostRecentOfKind(last.parent, proofOfStake)
	if prevOfKind == nil {
		return params.PowLimitBits
	}

	actualSpacing := int64(last.timestamp) - int64(prevOfKind.timestamp)
	if actualSpacing < 0 {
		actualSpacing = 0
	}
	if actualSpacing > params.StakeTargetSpacing*10 {
		actualSpacing = params.StakeTargetSpacing * 10
	}

	target := standalone.CompactToBig(last.bits)

	interval := params.TargetTimespan / params.StakeTargetSpacing
	numerator := (interval-1)*params.StakeTargetSpacing + actualSpacing + actualSpacing
	denominator := (interval + 1) * params.StakeTargetSpacing

	target.Mul(target, big.NewInt(numerator))
	target.Div(target, big.NewInt(denominator))

	if target.Sign() <= 0 || target.Cmp(params.PowLimit) > 0 {
		return params.PowLimitBits
	}
	return standalone.BigToCompact(target)
}

// mostRecentOfKind walks parent pointers starting at node, inclusive,
// returning the first block whose proof type matches proofOfStake.
func mostRecentOfKind(node *blockNode, proofOfStake bool) *blockNode {
	for node != nil && node.IsProofOfStake() != proofOfStake {
		node = node.parent
	}
	return node
}

// checkProofOfStake validates the kernel of a proof-of-stake block's
// coinstake transaction against the funding output it claims to spend,
// using the UTXO view to look up that output's value, confirmation
// height, and confirmation time. seen rejects a coinstake that reuses a
// (kernel input, stake time) pair already spent earlier on the active
// chain, the duplicate-stake case the kernel hash check alone can't catch
// since two different timestamps over the same held output are each
// individually a valid proof.
func checkProofOfStake(block *wire.MsgBlock, prevNode *blockNode, view CoinsView, params *chaincfg.Params, seen *stakeSeenView) (chainhash.Hash, error) {
	coinstake := block.Transactions[1]
	kernelIn := coinstake.TxIn[0]

	if seen.seen(kernelIn.PreviousOutPoint, coinstake.Time) {
		return chainhash.Hash{}, ruleError(ErrDuplicateStake,
			"coinstake kernel input already staked a block at this exact time")
	}

	entry, ok := view.GetCoins(kernelIn.PreviousOutPoint.Hash)
	if !ok {
		return chainhash.Hash{}, ruleError(ErrMissingTxOut,
			"coinstake kernel input spends an output not present in the UTXO view")
	}
	if !entry.IsAvailable(kernelIn.PreviousOutPoint.Index) {
		return chainhash.Hash{}, ruleError(ErrDoubleSpend,
			"coinstake kernel input is already spent")
	}

	if entry.CoinBase || entry.CoinStake {
		if prevNode.height+1-entry.Height < params.CoinbaseMaturity {
			return chainhash.Hash{}, ruleError(ErrImmatureSpend,
				"coinstake kernel input has not matured")
		}
	}
	if int64(coinstake.Time)-int64(entry.Time) < params.StakeMinAge {
		return chainhash.Hash{}, ruleError(ErrCoinstakeTooYoung,
			"coinstake kernel input is younger than the minimum stake age")
	}

	fundingOut := entry.Outs[kernelIn.PreviousOutPoint.Index]

	modifier, _, _, err := stake.GetKernelStakeModifier(prevNode, params.ModifierInterval)
	if err != nil {
		return chainhash.Hash{}, ruleError(ErrBadProofOfStake, err.Error())
	}

	in := stake.KernelInputs{
		StakeModifier: modifier,
		BlockFromTime: entry.BlockTime,
		TxPrevOffset:  entry.TxIndex,
		TxPrevTime:    entry.Time,
		PrevOutIndex:  kernelIn.PreviousOutPoint.Index,
		TxTime:        coinstake.Time,
	}

	ok2, hashProofOfStake, err := stake.CheckStakeKernelHash(block.Header.Bits, in,
		fundingOut.Value, params.StakeMinAge, params.StakeMaxAge)
	if err != nil {
		return chainhash.Hash{}, ruleError(ErrBadProofOfStake, err.Error())
	}
	if !ok2 {
		return chainhash.Hash{}, ruleError(ErrBadProofOfStake,
			"coinstake kernel hash does not satisfy the target")
	}

	seen.record(kernelIn.PreviousOutPoint, coinstake.Time)
	return hashProofOfStake, nil
}

// checkInputsAndSignatures validates a non-coinbase transaction's inputs
// against the UTXO view: that every spent output exists and is unspent,
// that coinbase/coinstake inputs have matured, that outputs don't exceed
// inputs (a coinstake is exempt from this check), and that every input's
// signature script satisfies its claimed
// output script. It returns the transaction's fee (inputs minus outputs).
func checkInputsAndSignatures(tx *wire.MsgTx, txIdx int, height int64, view CoinsView,
	sigCache *txscript.SigCache, params *chaincfg.Params) (int64, error) {

	var totalIn int64
	for _, txIn := range tx.TxIn {
		entry, ok := view.GetCoins(txIn.PreviousOutPoint.Hash)
		if !ok {
			return 0, ruleError(ErrMissingTxOut, "transaction input spends an unknown output")
		}
		idx := txIn.PreviousOutPoint.Index
		if !entry.IsAvailable(idx) {
			return 0, ruleError(ErrDoubleSpend, "transaction input double-spends an output")
		}

		if entry.CoinBase || entry.CoinStake {
			if height-entry.Height < params.CoinbaseMaturity {
				return 0, ruleError(ErrImmatureSpend,
					"transaction spends an immature coinbase or coinstake output")
			}
		}

		out := entry.Outs[idx]
		totalIn += out.Value

		engine, err := txscript.NewEngine(txIn.SignatureScript, out.PkScript, tx, txIdx, sigCache)
		if err != nil {
			return 0, ruleError(ErrScriptValidation, err.Error())
		}
		if err := engine.Execute(); err != nil {
			return 0, ruleError(ErrScriptValidation, err.Error())
		}
	}

	var totalOut int64
	for _, txOut := range tx.TxOut {
		totalOut += txOut.Value
	}
	if !tx.IsCoinStake() && totalIn < totalOut {
		return 0, ruleError(ErrBadFees, "transaction outputs exceed inputs")
	}

	return totalIn - totalOut, nil
}

// checkTransactionFinality rejects a block containing a transaction that
// is not yet final at the block's own height and timestamp.
func checkTransactionFinality(block *wire.MsgBlock, height int64) error {
	for _, tx := range block.Transactions {
		if !tx.IsFinal(height, int64(block.Header.Timestamp)) {
			return ruleError(ErrUnfinalizedTx, "block contains a non-final transaction")
		}
	}
	return nil
}
