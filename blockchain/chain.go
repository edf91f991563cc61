// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sync"
	"time"

	"github.com/novacore/novad/chaincfg"
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/primitives/uint256"
	"github.com/novacore/novad/txscript"
	"github.com/novacore/novad/wire"
)

// sigCacheMaxEntries bounds the signature verification cache shared across
// every block and mempool transaction this chain validates.
const sigCacheMaxEntries = 100000

// BlockChain is the full node's consensus state: the in-memory block
// index, the current best chain tip, the UTXO view stacked over the
// node's database, and the signature cache every script execution shares.
// A single coarse mutex serializes all mutation, mirroring the reference
// client's single global chain lock — this chain has no per-subsystem
// locking because block connection (scripts, UTXO spends, stake kernel
// checks) is never performance-isolated from reorg bookkeeping.
type BlockChain struct {
	mtx sync.RWMutex

	params *chaincfg.Params
	index  *blockIndex
	tip    *blockNode

	view      CoinsView
	mempool   *MempoolView
	store     BlockStore
	sigCache  *txscript.SigCache
	stakeSeen *stakeSeenSet

	checkpointsByHeight map[int64]chaincfg.Checkpoint
}

// New creates a BlockChain backed by db for UTXO persistence and store for
// block/undo persistence, bootstrapping the genesis block into both if
// this is a fresh database.
func New(db Database, store BlockStore, params *chaincfg.Params) (*BlockChain, error) {
	sigCache, err := txscript.NewSigCache(sigCacheMaxEntries)
	if err != nil {
		return nil, err
	}

	byHeight := make(map[int64]chaincfg.Checkpoint, len(params.Checkpoints))
	for _, cp := range params.Checkpoints {
		byHeight[cp.Height] = cp
	}

	persistent := NewPersistentView(db)
	bc := &BlockChain{
		params:              params,
		index:               newBlockIndex(),
		view:                persistent,
		mempool:             NewMempoolView(persistent),
		store:               store,
		sigCache:            sigCache,
		stakeSeen:           newStakeSeenSet(),
		checkpointsByHeight: byHeight,
	}

	if err := bc.initChainState(); err != nil {
		return nil, err
	}
	return bc, nil
}

// initChainState loads the genesis node into the index, creating the
// genesis block's coin entries and marking it the best block if this
// database has never seen a block before.
func (bc *BlockChain) initChainState() error {
	genesis := bc.params.GenesisBlock

	node, err := newBlockNode(&genesis.Header, nil)
	if err != nil {
		return err
	}
	node.raiseValidity(statusValidScripts)
	node.chainTrust = calcBlockTrust(node.bits)
	node.setStakeModifier(0, true)
	bc.index.addNode(node)

	best := bc.view.GetBestBlock()
	if best != (chainhash.Hash{}) {
		// An existing database already has a best block recorded. Only
		// the genesis node is added to the index and made the tip here;
		// stored blocks above genesis are not reloaded into the index.
		bc.tip = node
		return nil
	}

	if err := bc.store.SetBlock(node.hash, genesis); err != nil {
		return err
	}

	cached := NewCachedView(bc.view)
	for i, tx := range genesis.Transactions {
		cached.SetCoins(tx.TxHash(), NewCoinEntry(tx, node.height, genesis.Header.Timestamp, uint32(i)))
	}
	cached.SetBestBlock(node.hash)
	if err := cached.Flush(); err != nil {
		return err
	}

	bc.tip = node
	return nil
}

// ProcessBlock validates block and, if it's accepted, extends or
// reorganizes the chain onto it. It returns whether the block became part
// of the best chain.
//
// Every UTXO mutation block connection performs - including every block a
// reorg disconnects and reconnects along the way - lands in a CachedView
// created fresh for this call, never the persistent store directly. Only
// once the whole candidate tip has passed every check, including the
// checkpoint hash match, is that cache committed to disk in the single
// atomic CachedView.Flush below; any error return before that point leaves
// the UTXO set and its recorded best block exactly as they were before
// ProcessBlock was called. Block bodies and undo data written to the block
// store along the way are not removed.
func (bc *BlockChain) ProcessBlock(block *wire.MsgBlock, now time.Time) (bool, error) {
	bc.mtx.Lock()
	defer bc.mtx.Unlock()

	oldTip := bc.tip
	cached := NewCachedView(bc.view)
	seen := bc.stakeSeen.overlay()
	newTip, err := processBlock(bc.index, bc.tip, block, cached, bc.store, bc.sigCache, bc.params, seen, now)
	if err != nil {
		return false, err
	}

	if newTip == oldTip {
		return false, nil
	}

	if err := bc.checkHashCheckpoint(newTip); err != nil {
		return false, err
	}

	if err := cached.Flush(); err != nil {
		return false, err
	}
	seen.commit()

	if oldTip != nil && newTip.parent != oldTip {
		log.Infof("REORGANIZE: new best chain tip %s at height %d replaces %s",
			newTip.hash, newTip.height, oldTip.hash)
	} else {
		log.Debugf("accepted block %s at height %d", newTip.hash, newTip.height)
	}

	bc.tip = newTip
	bc.mempool.RemoveMined(block)
	return true, nil
}

// AcceptMempoolTransaction validates a standalone, non-coinbase,
// non-coinstake transaction against the current chain tip overlaid with
// every transaction already accepted into the mempool, admitting its
// outputs into that overlay on success so a later mempool transaction may
// spend them before either is ever mined. RemoveMined drops it again once
// it is itself confirmed; a different confirmed transaction spending the
// same inputs does not remove it.
func (bc *BlockChain) AcceptMempoolTransaction(tx *wire.MsgTx) error {
	bc.mtx.Lock()
	defer bc.mtx.Unlock()

	if tx.IsCoinBase() || tx.IsCoinStake() {
		return ruleError(ErrBadTxInput, "coinbase and coinstake transactions cannot be relayed standalone")
	}
	if err := checkTransactionSanity(tx); err != nil {
		return err
	}

	pseudo := &blockNode{height: bc.tip.height + 1, timestamp: uint32(time.Now().Unix())}
	_, _, err := connectTransaction(tx, 0, pseudo, bc.mempool, bc.sigCache, bc.params)
	return err
}

// checkHashCheckpoint rejects a tip whose ancestry passes through a
// checkpointed height without matching the checkpointed block hash. The
// stake modifier checksum checkpoints are enforced earlier, inside
// connectBlock, since they can only be evaluated once a block is actually
// connected.
func (bc *BlockChain) checkHashCheckpoint(node *blockNode) error {
	cp, ok := bc.checkpointsByHeight[node.height]
	if !ok {
		return nil
	}
	if node.hash != cp.Hash {
		return ruleError(ErrCheckpointMismatch,
			"block at a checkpointed height does not match the checkpoint hash")
	}
	return nil
}

// BestSnapshot reports the height, hash, and accumulated chain trust of
// the current best chain tip.
func (bc *BlockChain) BestSnapshot() (height int64, hash chainhash.Hash, trust uint256.Uint256) {
	bc.mtx.RLock()
	defer bc.mtx.RUnlock()
	return bc.tip.height, bc.tip.hash, bc.tip.chainTrust
}

// HaveBlock reports whether hash is already known to the block index,
// whether or not it's part of the best chain.
func (bc *BlockChain) HaveBlock(hash chainhash.Hash) bool {
	bc.mtx.RLock()
	defer bc.mtx.RUnlock()
	return bc.index.lookupNode(hash) != nil
}

// TipHeader returns the header of the current best chain tip.
func (bc *BlockChain) TipHeader() wire.BlockHeader {
	bc.mtx.RLock()
	defer bc.mtx.RUnlock()
	n := bc.tip
	return wire.BlockHeader{
		Version:    n.version,
		PrevBlock:  parentHash(n),
		MerkleRoot: n.merkleRoot,
		Timestamp:  n.timestamp,
		Bits:       n.bits,
		Nonce:      n.nonce,
	}
}

func parentHash(n *blockNode) chainhash.Hash {
	if n.parent == nil {
		return chainhash.Hash{}
	}
	return n.parent.hash
}
