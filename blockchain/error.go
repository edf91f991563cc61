// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a kind of consensus rule violation.
type ErrorCode int

const (
	// ErrDuplicateBlock indicates a block was already processed.
	ErrDuplicateBlock ErrorCode = iota

	// ErrBlockTooBig indicates the serialized block size exceeds the
	// maximum allowed.
	ErrBlockTooBig

	// ErrBadHeaderVersion indicates the block header's version is
	// outside the range the chain currently accepts.
	ErrBadHeaderVersion

	// ErrTimeTooOld indicates the block's timestamp is not after the
	// median time of the preceding blocks.
	ErrTimeTooOld

	// ErrTimeTooNew indicates the block's timestamp is too far in the
	// future relative to the validating node's clock.
	ErrTimeTooNew

	// ErrNoTransactions indicates a block has no transactions.
	ErrNoTransactions

	// ErrNoTxInputs indicates a transaction has no inputs.
	ErrNoTxInputs

	// ErrNoTxOutputs indicates a transaction has no outputs.
	ErrNoTxOutputs

	// ErrBadTxOutValue indicates a transaction output carries a negative
	// or overflowing value.
	ErrBadTxOutValue

	// ErrDuplicateTxInputs indicates a transaction spends the same
	// outpoint more than once.
	ErrDuplicateTxInputs

	// ErrBadTxInput indicates a transaction input refers to a null
	// outpoint outside of a coinbase.
	ErrBadTxInput

	// ErrMissingParent indicates the block's claimed previous block is
	// not known.
	ErrMissingParent

	// ErrBadMerkleRoot indicates the computed merkle root does not match
	// the one claimed in the header.
	ErrBadMerkleRoot

	// ErrDuplicateTx indicates a block contains two transactions with
	// the same hash.
	ErrDuplicateTx

	// ErrFirstTxNotCoinbase indicates the first transaction in a block
	// is not a coinbase.
	ErrFirstTxNotCoinbase

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases

	// ErrSecondTxNotCoinstake indicates a proof-of-stake block's second
	// transaction is not a coinstake, or a proof-of-work block's second
	// transaction is.
	ErrSecondTxNotCoinstake

	// ErrMultipleCoinstakes indicates a block contains more than one
	// coinstake transaction.
	ErrMultipleCoinstakes

	// ErrBadCoinbaseValue indicates a coinbase creates more coins than
	// the subsidy rules allow.
	ErrBadCoinbaseValue

	// ErrBadCoinbaseScriptLen indicates a coinbase's signature script is
	// outside the allowed length range.
	ErrBadCoinbaseScriptLen

	// ErrTooManySigOps indicates a block's total signature operation
	// count exceeds the maximum allowed.
	ErrTooManySigOps

	// ErrBadFees indicates a transaction's outputs exceed its inputs.
	ErrBadFees

	// ErrMissingTxOut indicates a transaction spends an outpoint that
	// does not exist in the UTXO view.
	ErrMissingTxOut

	// ErrDoubleSpend indicates a transaction spends an output that was
	// already spent.
	ErrDoubleSpend

	// ErrImmatureSpend indicates a transaction spends a coinbase or
	// coinstake output before it has matured.
	ErrImmatureSpend

	// ErrScriptValidation indicates a transaction input's signature
	// script failed to satisfy its corresponding output script.
	ErrScriptValidation

	// ErrUnfinalizedTx indicates a block contains a transaction that is
	// not yet final per its lock time and input sequence numbers.
	ErrUnfinalizedTx

	// ErrBadProofOfWork indicates a proof-of-work block's hash does not
	// satisfy its claimed difficulty target.
	ErrBadProofOfWork

	// ErrBadProofOfStake indicates a proof-of-stake block's kernel hash
	// does not satisfy its claimed difficulty target.
	ErrBadProofOfStake

	// ErrBadDifficultyBits indicates a block's difficulty bits do not
	// match the value the retarget rule requires.
	ErrBadDifficultyBits

	// ErrCoinstakeTooYoung indicates a coinstake spends an input younger
	// than the minimum stake age.
	ErrCoinstakeTooYoung

	// ErrBadCoinstakeTime indicates a coinstake transaction's timestamp
	// does not match its containing block's header timestamp.
	ErrBadCoinstakeTime

	// ErrMissingBlockSignature indicates a proof-of-stake block is
	// missing the signature over its kernel input's owning script.
	ErrMissingBlockSignature

	// ErrBadBlockSignature indicates a proof-of-stake block's signature
	// does not verify against its coinstake kernel input.
	ErrBadBlockSignature

	// ErrCheckpointMismatch indicates a block at a checkpointed height
	// does not hash to the checkpointed value.
	ErrCheckpointMismatch

	// ErrStakeModifierCheckpointMismatch indicates a block's stake
	// modifier checksum does not match a hardened checkpoint.
	ErrStakeModifierCheckpointMismatch

	// ErrForkTooOld indicates a reorganization would rewrite a block
	// older than the checkpoint-enforced reorg limit.
	ErrForkTooOld

	// ErrDuplicateStake indicates a coinstake reuses the same kernel
	// input and stake time as a coinstake already present on the active
	// chain.
	ErrDuplicateStake
)

var errorCodeStrings = map[ErrorCode]string{
	ErrDuplicateBlock:                  "ErrDuplicateBlock",
	ErrBlockTooBig:                     "ErrBlockTooBig",
	ErrBadHeaderVersion:                "ErrBadHeaderVersion",
	ErrTimeTooOld:                      "ErrTimeTooOld",
	ErrTimeTooNew:                      "ErrTimeTooNew",
	ErrNoTransactions:                  "ErrNoTransactions",
	ErrNoTxInputs:                      "ErrNoTxInputs",
	ErrNoTxOutputs:                     "ErrNoTxOutputs",
	ErrBadTxOutValue:                   "ErrBadTxOutValue",
	ErrDuplicateTxInputs:               "ErrDuplicateTxInputs",
	ErrBadTxInput:                      "ErrBadTxInput",
	ErrMissingParent:                   "ErrMissingParent",
	ErrBadMerkleRoot:                   "ErrBadMerkleRoot",
	ErrDuplicateTx:                     "ErrDuplicateTx",
	ErrFirstTxNotCoinbase:              "ErrFirstTxNotCoinbase",
	ErrMultipleCoinbases:               "ErrMultipleCoinbases",
	ErrSecondTxNotCoinstake:            "ErrSecondTxNotCoinstake",
	ErrMultipleCoinstakes:              "ErrMultipleCoinstakes",
	ErrBadCoinbaseValue:                "ErrBadCoinbaseValue",
	ErrBadCoinbaseScriptLen:            "ErrBadCoinbaseScriptLen",
	ErrTooManySigOps:                   "ErrTooManySigOps",
	ErrBadFees:                         "ErrBadFees",
	ErrMissingTxOut:                    "ErrMissingTxOut",
	ErrDoubleSpend:                     "ErrDoubleSpend",
	ErrImmatureSpend:                   "ErrImmatureSpend",
	ErrScriptValidation:                "ErrScriptValidation",
	ErrUnfinalizedTx:                   "ErrUnfinalizedTx",
	ErrBadProofOfWork:                  "ErrBadProofOfWork",
	ErrBadProofOfStake:                 "ErrBadProofOfStake",
	ErrBadDifficultyBits:               "ErrBadDifficultyBits",
	ErrCoinstakeTooYoung:               "ErrCoinstakeTooYoung",
	ErrBadCoinstakeTime:                "ErrBadCoinstakeTime",
	ErrMissingBlockSignature:           "ErrMissingBlockSignature",
	ErrBadBlockSignature:               "ErrBadBlockSignature",
	ErrCheckpointMismatch:              "ErrCheckpointMismatch",
	ErrStakeModifierCheckpointMismatch: "ErrStakeModifierCheckpointMismatch",
	ErrForkTooOld:                      "ErrForkTooOld",
	ErrDuplicateStake:                  "ErrDuplicateStake",
}

// String returns the human-readable name of the error code.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(e))
}

// RuleError identifies a block or transaction that violates a consensus
// rule. Callers that need to distinguish rule violations from I/O or
// programming errors should check for this type with errors.As.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates a RuleError from the given code and description.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// AssertError marks an invariant the caller believed always held but
// didn't — a programming error in this codebase rather than a consensus
// rule violation in the data being validated.
type AssertError string

// Error satisfies the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}
