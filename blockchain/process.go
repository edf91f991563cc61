// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/novacore/novad/blockchain/standalone"
	"github.com/novacore/novad/blockchain/stake"
	"github.com/novacore/novad/chaincfg"
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/primitives/uint256"
	"github.com/novacore/novad/txscript"
	"github.com/novacore/novad/wire"
)

// BlockStore is the block-and-undo persistence contract processBlock and
// reorganizeChain need beyond the UTXO view itself: the full body of any
// block already admitted to the index, and the undo data recorded for any
// block already connected to the chain tip. The node wires this to its
// database-backed block store; this package never touches that store
// directly, the same interface-at-the-seam pattern used for stake.NodeInfo
// and Database.
type BlockStore interface {
	Block(hash chainhash.Hash) (*wire.MsgBlock, error)
	SetBlock(hash chainhash.Hash, block *wire.MsgBlock) error
	Undo(hash chainhash.Hash) (*BlockUndo, error)
	SetUndo(hash chainhash.Hash, undo *BlockUndo) error
}

// calcBlockTrust returns the amount of chain work a block with the given
// difficulty bits contributes, 2**256 divided by the target plus one, the
// quantity chainTrust accumulates so forks can be compared by total work
// rather than by height alone.
func calcBlockTrust(bits uint32) uint256.Uint256 {
	target := standalone.CompactToBig(bits)
	if target.Sign() <= 0 {
		target = big.NewInt(1)
	}

	numerator := new(big.Int).Lsh(big.NewInt(1), 256)
	denominator := new(big.Int).Add(target, big.NewInt(1))
	trust := new(big.Int).Div(numerator, denominator)

	var buf [32]byte
	b := trust.Bytes()
	copy(buf[32-len(b):], b)

	var u uint256.Uint256
	u.SetBytesBE(buf[:])
	return u
}

// computeCoinAge returns the coin-day weight a coinstake's kernel input
// destroys: its funding output's value in atoms times the number of days it
// was held, clamped the same way CheckStakeKernelHash clamps it, the quantity
// that bounds how large a proof-of-stake subsidy the coinstake may mint.
func computeCoinAge(coinstake *wire.MsgTx, view CoinsView, params *chaincfg.Params) (int64, error) {
	kernelIn := coinstake.TxIn[0]
	entry, ok := view.GetCoins(kernelIn.PreviousOutPoint.Hash)
	if !ok {
		return 0, ruleError(ErrMissingTxOut, "coinstake kernel input spends an unknown output")
	}
	out := entry.Outs[kernelIn.PreviousOutPoint.Index]

	weight := stake.GetWeight(int64(entry.Time), int64(coinstake.Time), params.StakeMinAge, params.StakeMaxAge)
	coinDays := out.Value * weight / (24 * 60 * 60)
	return coinDays, nil
}

// connectTransaction validates (for anything but a coinbase) and applies a
// single transaction against view: spending its inputs, recording the undo
// data needed to reverse those spends, and adding its own outputs as a
// fresh coin entry. It returns the transaction's fee: zero for a
// coinbase, and negative for a coinstake whose outputs exceed its inputs.
func connectTransaction(tx *wire.MsgTx, txIdx int, node *blockNode, view CoinsView,
	sigCache *txscript.SigCache, params *chaincfg.Params) (int64, TxUndo, error) {

	if tx.IsCoinBase() {
		view.SetCoins(tx.TxHash(), NewCoinEntry(tx, node.height, node.timestamp, uint32(txIdx)))
		return 0, TxUndo{}, nil
	}

	fee, err := checkInputsAndSignatures(tx, txIdx, node.height, view, sigCache, params)
	if err != nil {
		return 0, TxUndo{}, err
	}

	txUndo := TxUndo{Inputs: make([]TxInUndo, len(tx.TxIn))}
	for i, txIn := range tx.TxIn {
		entry, ok := view.GetCoins(txIn.PreviousOutPoint.Hash)
		if !ok {
			return 0, TxUndo{}, AssertError("spend of a previously validated input vanished from the view")
		}
		u, ok := entry.Spend(txIn.PreviousOutPoint.Index)
		if !ok {
			return 0, TxUndo{}, AssertError("spend of a previously validated input failed")
		}
		txUndo.Inputs[i] = u

		if entry.IsPruned() {
			view.SetCoins(txIn.PreviousOutPoint.Hash, nil)
		} else {
			view.SetCoins(txIn.PreviousOutPoint.Hash, entry)
		}
	}

	view.SetCoins(tx.TxHash(), NewCoinEntry(tx, node.height, node.timestamp, uint32(txIdx)))
	return fee, txUndo, nil
}

// connectBlock applies every transaction in block to view, enforcing the
// coinbase (or, on a proof-of-stake block, the coinstake) subsidy bound
// against the fees and coin-age actually available, and returns the undo
// data needed to reverse the whole block later.
func connectBlock(block *wire.MsgBlock, node *blockNode, prevNode *blockNode, view CoinsView,
	sigCache *txscript.SigCache, params *chaincfg.Params, seen *stakeSeenView) (*BlockUndo, error) {

	isPoS := block.IsProofOfStake()
	undo := &BlockUndo{TxUndo: make([]TxUndo, len(block.Transactions))}

	// The stake modifier and its checksum can only be computed once a
	// node is actually connected: ComputeNextStakeModifier needs every
	// ancestor's own modifier already set, which is only guaranteed for
	// blocks that have themselves been connected before. Side-chain
	// blocks more than one deep are therefore left without a modifier
	// until their branch becomes the best chain.
	modifier, generated, err := stake.ComputeNextStakeModifier(node, params.ModifierInterval)
	if err != nil {
		return nil, ruleError(ErrBadProofOfStake, err.Error())
	}
	node.setStakeModifier(modifier, generated)
	node.setStakeEntropyBit(node.hash[chainhash.HashSize-1] & 1)

	var coinAge int64
	if isPoS {
		hashProofOfStake, err := checkProofOfStake(block, prevNode, view, params, seen)
		if err != nil {
			return nil, err
		}
		coinAge, err = computeCoinAge(block.Transactions[1], view, params)
		if err != nil {
			return nil, err
		}
		node.hashProofOfStake = hashProofOfStake
		node.prevoutStake = block.Transactions[1].TxIn[0].PreviousOutPoint
		node.stakeTime = block.Transactions[1].Time
	}

	var parentChecksum uint32
	if node.parent != nil {
		parentChecksum = node.parent.stakeModifierChecksum
	}
	node.stakeModifierChecksum = stake.GetStakeModifierChecksum(
		parentChecksum, uint32(node.flags), node.hashProofOfStake, node.stakeModifier)
	if !stake.CheckStakeModifierCheckpoints(node.height, node.stakeModifierChecksum, params.StakeModifierCheckpoints) {
		return nil, ruleError(ErrStakeModifierCheckpointMismatch,
			"stake modifier checksum does not match a hardened checkpoint")
	}

	ordinaryStart := 1
	if isPoS {
		ordinaryStart = 2
	}

	var totalFees int64
	for i := ordinaryStart; i < len(block.Transactions); i++ {
		fee, txUndo, err := connectTransaction(block.Transactions[i], i, node, view, sigCache, params)
		if err != nil {
			return nil, err
		}
		totalFees += fee
		undo.TxUndo[i] = txUndo
	}

	if isPoS {
		coinstake := block.Transactions[1]
		fee, txUndo, err := connectTransaction(coinstake, 1, node, view, sigCache, params)
		if err != nil {
			return nil, err
		}
		mint := -fee
		allowed := CalcProofOfStakeSubsidy(coinAge, totalFees, params)
		if mint > allowed {
			return nil, ruleError(ErrBadCoinbaseValue,
				"coinstake mints more than the available proof-of-stake subsidy and fees")
		}
		undo.TxUndo[1] = txUndo
	}

	coinbase := block.Transactions[0]
	var coinbaseOut int64
	for _, out := range coinbase.TxOut {
		coinbaseOut += out.Value
	}
	if isPoS {
		if coinbaseOut != 0 {
			return nil, ruleError(ErrBadCoinbaseValue,
				"proof-of-stake block's coinbase must carry no value")
		}
	} else {
		allowed := CalcProofOfWorkSubsidy(node.height, totalFees, params)
		if coinbaseOut > allowed {
			return nil, ruleError(ErrBadCoinbaseValue,
				"coinbase creates more coins than the subsidy and fees allow")
		}
	}
	_, cbUndo, err := connectTransaction(coinbase, 0, node, view, sigCache, params)
	if err != nil {
		return nil, err
	}
	undo.TxUndo[0] = cbUndo

	view.SetBestBlock(node.hash)
	return undo, nil
}

// restoreSpentOutput undoes a single spend recorded in a TxInUndo, either
// reviving a pruned coin record or patching a surviving one, the mirror
// image of CoinEntry.Spend.
func restoreSpentOutput(view CoinsView, outpoint wire.OutPoint, u TxInUndo) {
	entry, ok := view.GetCoins(outpoint.Hash)
	if !ok || u.HasExtra {
		entry = &CoinEntry{}
		if u.HasExtra {
			entry.CoinBase = u.CoinBase
			entry.CoinStake = u.CoinStake
			entry.Version = u.Version
			entry.Height = u.Height
			entry.Time = u.Time
			entry.BlockTime = u.BlockTime
			entry.TxIndex = u.TxIndex
		}
	}

	if int(outpoint.Index) >= len(entry.Outs) {
		grown := make([]*wire.TxOut, outpoint.Index+1)
		copy(grown, entry.Outs)
		for i := range grown {
			if grown[i] == nil {
				grown[i] = &wire.TxOut{Value: -1}
			}
		}
		entry.Outs = grown
	}

	restored := u.Out
	entry.Outs[outpoint.Index] = &restored
	view.SetCoins(outpoint.Hash, entry)
}

// disconnectBlock reverses every transaction in block against view using
// undo, restoring the UTXO set to the state it held immediately before the
// block was connected.
func disconnectBlock(block *wire.MsgBlock, node *blockNode, view CoinsView, undo *BlockUndo, seen *stakeSeenView) error {
	if len(undo.TxUndo) != len(block.Transactions) {
		return AssertError("undo data does not cover every transaction in the block")
	}

	if block.IsProofOfStake() {
		seen.forget(block.Transactions[1].TxIn[0].PreviousOutPoint)
	}

	for i := len(block.Transactions) - 1; i >= 0; i-- {
		tx := block.Transactions[i]
		view.SetCoins(tx.TxHash(), nil)

		if tx.IsCoinBase() {
			continue
		}

		txUndo := undo.TxUndo[i]
		for j := len(tx.TxIn) - 1; j >= 0; j-- {
			restoreSpentOutput(view, tx.TxIn[j].PreviousOutPoint, txUndo.Inputs[j])
		}
	}

	if node.parent != nil {
		view.SetBestBlock(node.parent.hash)
	}
	return nil
}

// reorganizeChain disconnects oldTip's branch down to its fork point with
// newTip and connects newTip's branch back up, leaving view positioned at
// newTip. view is always a fresh CachedView over the chain's persistent
// store, so nothing here is visible outside the caller until it flushes:
// on any failure partway through connecting the new branch, the failing
// node is marked FAILED (propagating to anything already linked beneath
// it) and the error is returned; the caller discards view unflushed,
// which is exactly equivalent to restoring oldTip, since the persistent
// store was never touched by either the disconnect or the partial
// reconnect.
func reorganizeChain(view CoinsView, store BlockStore, oldTip, newTip *blockNode,
	sigCache *txscript.SigCache, params *chaincfg.Params, seen *stakeSeenView) error {

	fork := findFork(oldTip, newTip)
	log.Debugf("reorganize: disconnecting from %s down to fork point %s",
		oldTip.hash, fork.hash)

	for n := oldTip; n != fork; n = n.parent {
		block, err := store.Block(n.hash)
		if err != nil {
			return err
		}
		undo, err := store.Undo(n.hash)
		if err != nil {
			return err
		}
		if err := disconnectBlock(block, n, view, undo, seen); err != nil {
			return err
		}
	}

	var toConnect []*blockNode
	for n := newTip; n != fork; n = n.parent {
		toConnect = append(toConnect, n)
	}
	for i, j := 0, len(toConnect)-1; i < j; i, j = i+1, j-1 {
		toConnect[i], toConnect[j] = toConnect[j], toConnect[i]
	}

	for _, n := range toConnect {
		block, err := store.Block(n.hash)
		if err != nil {
			return err
		}
		undo, err := connectBlock(block, n, n.parent, view, sigCache, params, seen)
		if err != nil {
			n.markFailed()
			log.Infof("reorganize: %s failed to connect (%v), restoring previous tip %s",
				n.hash, err, oldTip.hash)
			return err
		}
		if err := store.SetUndo(n.hash, undo); err != nil {
			return err
		}
	}

	relinkMainChain(fork, toConnect)

	return nil
}

// relinkMainChain updates the forward next pointers from fork through the
// newly connected branch, the chain walk stake.GetKernelStakeModifier and
// medianTimePast depend on staying accurate after a reorg.
func relinkMainChain(fork *blockNode, connected []*blockNode) {
	prev := fork
	for _, n := range connected {
		prev.next = n
		prev = n
	}
	prev.next = nil
}

// processBlock runs full validation for a candidate block, extends the
// block index with it, and — if it becomes the new most-work tip — connects
// it (or reorganizes onto it) against view. It returns the chain's tip
// after processing, which is unchanged from the passed-in tip if the block
// was accepted only as a less-work side chain entry.
func processBlock(bi *blockIndex, tip *blockNode, block *wire.MsgBlock, view CoinsView, store BlockStore,
	sigCache *txscript.SigCache, params *chaincfg.Params, seen *stakeSeenView, now time.Time) (*blockNode, error) {

	hash, err := block.Header.BlockHash()
	if err != nil {
		return tip, err
	}
	if bi.lookupNode(hash) != nil {
		return tip, ruleError(ErrDuplicateBlock, "block has already been processed")
	}

	if err := checkBlockSanity(block, params, now); err != nil {
		return tip, err
	}

	parent := bi.lookupNode(block.Header.PrevBlock)
	if parent == nil {
		return tip, ruleError(ErrMissingParent, "block's claimed previous block is not known")
	}

	node, err := newBlockNode(&block.Header, parent)
	if err != nil {
		return tip, err
	}
	if block.IsProofOfStake() {
		node.setProofOfStake()
	}

	if err := checkBlockContext(block, parent, params); err != nil {
		return tip, err
	}
	if err := checkTransactionFinality(block, node.height); err != nil {
		return tip, err
	}

	node.chainTrust = parent.chainTrust.Add(calcBlockTrust(node.bits))

	if err := store.SetBlock(hash, block); err != nil {
		return tip, err
	}
	bi.addNode(node)

	if tip != nil && node.chainTrust.Cmp(tip.chainTrust) <= 0 {
		return tip, nil
	}

	if tip == nil || node.parent == tip {
		undo, err := connectBlock(block, node, parent, view, sigCache, params, seen)
		if err != nil {
			node.markFailed()
			return tip, err
		}
		if err := store.SetUndo(hash, undo); err != nil {
			return tip, err
		}
		if tip != nil {
			tip.next = node
		}
		node.raiseValidity(statusValidScripts)
		return node, nil
	}

	if err := reorganizeChain(view, store, tip, node, sigCache, params, seen); err != nil {
		return tip, err
	}
	node.raiseValidity(statusValidScripts)
	return node, nil
}
