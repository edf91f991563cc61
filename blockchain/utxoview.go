// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

// CoinsView is the capability interface every layer of the UTXO view
// stack implements: a persistent base backed by the database, a cached
// layer collecting writes in memory, and a mempool layer for unconfirmed
// spends, all addressable the same way.
type CoinsView interface {
	GetCoins(txid chainhash.Hash) (*CoinEntry, bool)
	SetCoins(txid chainhash.Hash, entry *CoinEntry)
	HaveCoins(txid chainhash.Hash) bool
	GetBestBlock() chainhash.Hash
	SetBestBlock(hash chainhash.Hash)
	BatchWrite(entries map[chainhash.Hash]*CoinEntry, bestBlock chainhash.Hash) error
}

// PersistentView is the bottom of the UTXO view stack, reading and writing
// coin records through a Database.
type PersistentView struct {
	db Database
}

// NewPersistentView returns a CoinsView backed directly by db.
func NewPersistentView(db Database) *PersistentView {
	return &PersistentView{db: db}
}

// GetCoins implements CoinsView.
func (v *PersistentView) GetCoins(txid chainhash.Hash) (*CoinEntry, bool) {
	return v.db.GetCoins(txid)
}

// SetCoins implements CoinsView.
func (v *PersistentView) SetCoins(txid chainhash.Hash, entry *CoinEntry) {
	v.db.SetCoins(txid, entry)
}

// HaveCoins implements CoinsView.
func (v *PersistentView) HaveCoins(txid chainhash.Hash) bool {
	_, ok := v.db.GetCoins(txid)
	return ok
}

// GetBestBlock implements CoinsView.
func (v *PersistentView) GetBestBlock() chainhash.Hash {
	return v.db.GetBestBlock()
}

// SetBestBlock implements CoinsView.
func (v *PersistentView) SetBestBlock(hash chainhash.Hash) {
	v.db.SetBestBlock(hash)
}

// BatchWrite implements CoinsView, committing entries and the new best
// block hash to the database together.
func (v *PersistentView) BatchWrite(entries map[chainhash.Hash]*CoinEntry, bestBlock chainhash.Hash) error {
	return v.db.BatchWriteCoins(entries, bestBlock)
}

// cachedCoin wraps a CoinEntry with a dirty flag marking whether it needs
// to be written through to the backing view on Flush.
type cachedCoin struct {
	entry *CoinEntry
	dirty bool
	fresh bool
}

// CachedView is a CoinsView that buffers reads and writes in memory over a
// backing CoinsView, the layer ConnectBlock/DisconnectBlock mutate while
// validating a block before flushing to the persistent view.
type CachedView struct {
	base      CoinsView
	cache     map[chainhash.Hash]*cachedCoin
	bestBlock chainhash.Hash
	haveBest  bool
}

// NewCachedView returns a CachedView layered over base.
func NewCachedView(base CoinsView) *CachedView {
	return &CachedView{base: base, cache: make(map[chainhash.Hash]*cachedCoin)}
}

// GetCoins implements CoinsView, consulting the cache before falling
// through to base.
func (v *CachedView) GetCoins(txid chainhash.Hash) (*CoinEntry, bool) {
	if c, ok := v.cache[txid]; ok {
		if c.entry == nil {
			return nil, false
		}
		return c.entry, true
	}
	entry, ok := v.base.GetCoins(txid)
	if !ok {
		return nil, false
	}
	v.cache[txid] = &cachedCoin{entry: entry}
	return entry, true
}

// SetCoins implements CoinsView, marking the entry dirty so Flush writes
// it through.
func (v *CachedView) SetCoins(txid chainhash.Hash, entry *CoinEntry) {
	existing, hadExisting := v.cache[txid]
	fresh := !hadExisting && !v.base.HaveCoins(txid)
	if hadExisting {
		fresh = existing.fresh
	}
	v.cache[txid] = &cachedCoin{entry: entry, dirty: true, fresh: fresh}
}

// AddCoins registers entry in the cache as dirty and freshly created.
// Flush hands the backing view only the entries themselves; the fresh
// mark is not passed on.
func (v *CachedView) AddCoins(txid chainhash.Hash, entry *CoinEntry) {
	v.cache[txid] = &cachedCoin{entry: entry, dirty: true, fresh: true}
}

// HaveCoins implements CoinsView.
func (v *CachedView) HaveCoins(txid chainhash.Hash) bool {
	if c, ok := v.cache[txid]; ok {
		return c.entry != nil
	}
	return v.base.HaveCoins(txid)
}

// GetBestBlock implements CoinsView.
func (v *CachedView) GetBestBlock() chainhash.Hash {
	if v.haveBest {
		return v.bestBlock
	}
	return v.base.GetBestBlock()
}

// SetBestBlock implements CoinsView.
func (v *CachedView) SetBestBlock(hash chainhash.Hash) {
	v.bestBlock = hash
	v.haveBest = true
}

// BatchWrite implements CoinsView by merging entries into the cache
// without touching the backing view; used when composing cached views.
func (v *CachedView) BatchWrite(entries map[chainhash.Hash]*CoinEntry, bestBlock chainhash.Hash) error {
	for txid, entry := range entries {
		v.SetCoins(txid, entry)
	}
	v.SetBestBlock(bestBlock)
	return nil
}

// Flush commits every dirty cache entry to the backing view in a single
// batch and clears the cache.
func (v *CachedView) Flush() error {
	dirty := make(map[chainhash.Hash]*CoinEntry, len(v.cache))
	for txid, c := range v.cache {
		if c.dirty {
			dirty[txid] = c.entry
		}
	}
	if err := v.base.BatchWrite(dirty, v.GetBestBlock()); err != nil {
		return err
	}
	v.cache = make(map[chainhash.Hash]*cachedCoin)
	v.haveBest = false
	return nil
}

// MempoolView layers unconfirmed spends over a CachedView-or-deeper
// CoinsView, letting mempool acceptance see its own unconfirmed outputs
// without ever persisting them.
type MempoolView struct {
	base     CoinsView
	pool     map[chainhash.Hash]*CoinEntry
	spent    map[chainhash.Hash]bool
}

// NewMempoolView returns a CoinsView overlaying unconfirmed transaction
// outputs on top of base.
func NewMempoolView(base CoinsView) *MempoolView {
	return &MempoolView{
		base:  base,
		pool:  make(map[chainhash.Hash]*CoinEntry),
		spent: make(map[chainhash.Hash]bool),
	}
}

// GetCoins implements CoinsView.
func (v *MempoolView) GetCoins(txid chainhash.Hash) (*CoinEntry, bool) {
	if v.spent[txid] {
		return nil, false
	}
	if entry, ok := v.pool[txid]; ok {
		return entry, true
	}
	return v.base.GetCoins(txid)
}

// SetCoins implements CoinsView, recording an unconfirmed coin entry.
func (v *MempoolView) SetCoins(txid chainhash.Hash, entry *CoinEntry) {
	delete(v.spent, txid)
	v.pool[txid] = entry
}

// Remove drops an unconfirmed entry, used when a mempool transaction is
// evicted or mined.
func (v *MempoolView) Remove(txid chainhash.Hash) {
	delete(v.pool, txid)
	v.spent[txid] = true
}

// HaveCoins implements CoinsView.
func (v *MempoolView) HaveCoins(txid chainhash.Hash) bool {
	if v.spent[txid] {
		return false
	}
	if _, ok := v.pool[txid]; ok {
		return true
	}
	return v.base.HaveCoins(txid)
}

// GetBestBlock implements CoinsView, delegating to base since the mempool
// has no notion of a best block of its own.
func (v *MempoolView) GetBestBlock() chainhash.Hash {
	return v.base.GetBestBlock()
}

// SetBestBlock implements CoinsView by forwarding to base.
func (v *MempoolView) SetBestBlock(hash chainhash.Hash) {
	v.base.SetBestBlock(hash)
}

// BatchWrite implements CoinsView by forwarding to base; the mempool view
// is never itself the target of a block-connect batch write.
func (v *MempoolView) BatchWrite(entries map[chainhash.Hash]*CoinEntry, bestBlock chainhash.Hash) error {
	return v.base.BatchWrite(entries, bestBlock)
}

// RemoveMined drops every transaction in block from the pool, so lookups
// of those transactions fall through to the confirmed outputs in base.
// Only the block's own transactions are dropped: a pool transaction that
// spends the same inputs as a mined one stays in the pool.
func (v *MempoolView) RemoveMined(block *wire.MsgBlock) {
	for _, tx := range block.Transactions {
		txid := tx.TxHash()
		delete(v.pool, txid)
		delete(v.spent, txid)
	}
}
