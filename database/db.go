// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package database is the node's on-disk key/value store: a thin wrapper
// over goleveldb exposing exactly the read/write surface blockchain.Database
// and blockchain.BlockStore need, keyed the way the reference client's own
// chainstate database is — single-character prefixes ahead of a fixed-width
// key, one logical record per key, no buckets or sub-namespacing beyond
// that prefix byte.
package database

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/novacore/novad/blockchain"
	"github.com/novacore/novad/chainhash"
)

// Key prefixes. Each is one byte ahead of a fixed-width hash, except
// bestBlockKey which names a single record outright.
const (
	coinPrefix  = 'c' // coinPrefix || txid -> serialized CoinEntry
	blockPrefix = 'b' // blockPrefix || hash -> serialized wire.MsgBlock
	undoPrefix  = 'u' // undoPrefix || hash -> serialized blockchain.BlockUndo
)

// bestBlockKey names the single record holding the current best block hash.
var bestBlockKey = []byte{'B'}

// DB is a goleveldb-backed store implementing both blockchain.Database
// (the UTXO/chain-metadata contract) and blockchain.BlockStore (block and
// undo-data persistence), so a single open handle serves both roles the
// node needs from its database.
type DB struct {
	ldb *leveldb.DB
}

// Open opens (creating if necessary) the leveldb database rooted at path.
func Open(path string) (*DB, error) {
	ldb, err := leveldb.OpenFile(path, &opt.Options{
		ErrorIfMissing: false,
	})
	if err != nil {
		return nil, err
	}
	return &DB{ldb: ldb}, nil
}

// Close releases the underlying leveldb handle.
func (db *DB) Close() error {
	return db.ldb.Close()
}

func fixedKey(prefix byte, hash chainhash.Hash) []byte {
	k := make([]byte, 1+chainhash.HashSize)
	k[0] = prefix
	copy(k[1:], hash[:])
	return k
}

// GetCoins implements blockchain.Database.
func (db *DB) GetCoins(txid chainhash.Hash) (*blockchain.CoinEntry, bool) {
	val, err := db.ldb.Get(fixedKey(coinPrefix, txid), nil)
	if err != nil {
		if err != leveldb.ErrNotFound {
			log.Errorf("get coin entry %s: %v", txid, err)
		}
		return nil, false
	}
	entry := new(blockchain.CoinEntry)
	if err := entry.Deserialize(bytes.NewReader(val)); err != nil {
		log.Errorf("deserialize coin entry %s: %v", txid, err)
		return nil, false
	}
	return entry, true
}

// SetCoins implements blockchain.Database. A nil or fully pruned entry
// deletes the record rather than writing an empty one.
func (db *DB) SetCoins(txid chainhash.Hash, entry *blockchain.CoinEntry) {
	if entry == nil || entry.IsPruned() {
		if err := db.ldb.Delete(fixedKey(coinPrefix, txid), nil); err != nil {
			log.Errorf("delete coin entry %s: %v", txid, err)
		}
		return
	}
	var buf bytes.Buffer
	if err := entry.Serialize(&buf); err != nil {
		log.Errorf("serialize coin entry %s: %v", txid, err)
		return
	}
	if err := db.ldb.Put(fixedKey(coinPrefix, txid), buf.Bytes(), nil); err != nil {
		log.Errorf("put coin entry %s: %v", txid, err)
	}
}

// GetBestBlock implements blockchain.Database.
func (db *DB) GetBestBlock() chainhash.Hash {
	val, err := db.ldb.Get(bestBlockKey, nil)
	if err != nil {
		return chainhash.Hash{}
	}
	var hash chainhash.Hash
	copy(hash[:], val)
	return hash
}

// SetBestBlock implements blockchain.Database.
func (db *DB) SetBestBlock(hash chainhash.Hash) {
	if err := db.ldb.Put(bestBlockKey, hash[:], nil); err != nil {
		log.Errorf("set best block: %v", err)
	}
}

// BatchWriteCoins implements blockchain.Database, committing every coin
// entry change and the new best block hash in a single leveldb batch so a
// crash mid-write can never leave the UTXO set and the best block pointer
// disagreeing with each other.
func (db *DB) BatchWriteCoins(entries map[chainhash.Hash]*blockchain.CoinEntry, bestBlock chainhash.Hash) error {
	batch := new(leveldb.Batch)
	for txid, entry := range entries {
		key := fixedKey(coinPrefix, txid)
		if entry == nil || entry.IsPruned() {
			batch.Delete(key)
			continue
		}
		var buf bytes.Buffer
		if err := entry.Serialize(&buf); err != nil {
			return err
		}
		batch.Put(key, buf.Bytes())
	}
	batch.Put(bestBlockKey, bestBlock[:])
	return db.ldb.Write(batch, nil)
}
