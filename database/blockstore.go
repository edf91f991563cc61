// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package database

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/novacore/novad/blockchain"
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

// Block implements blockchain.BlockStore, reading back a block previously
// stored with SetBlock.
func (db *DB) Block(hash chainhash.Hash) (*wire.MsgBlock, error) {
	val, err := db.ldb.Get(fixedKey(blockPrefix, hash), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, blockchain.AssertError("block " + hash.String() + " not found in store")
		}
		return nil, err
	}
	block := new(wire.MsgBlock)
	if err := block.Deserialize(bytes.NewReader(val)); err != nil {
		return nil, err
	}
	return block, nil
}

// SetBlock implements blockchain.BlockStore, persisting block under hash.
func (db *DB) SetBlock(hash chainhash.Hash, block *wire.MsgBlock) error {
	var buf bytes.Buffer
	if err := block.Serialize(&buf); err != nil {
		return err
	}
	return db.ldb.Put(fixedKey(blockPrefix, hash), buf.Bytes(), nil)
}

// Undo implements blockchain.BlockStore, reading back the undo data for
// the block at hash.
func (db *DB) Undo(hash chainhash.Hash) (*blockchain.BlockUndo, error) {
	val, err := db.ldb.Get(fixedKey(undoPrefix, hash), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, blockchain.AssertError("undo data for " + hash.String() + " not found in store")
		}
		return nil, err
	}
	undo := new(blockchain.BlockUndo)
	if err := undo.Deserialize(bytes.NewReader(val)); err != nil {
		return nil, err
	}
	return undo, nil
}

// SetUndo implements blockchain.BlockStore, persisting undo under hash.
func (db *DB) SetUndo(hash chainhash.Hash, undo *blockchain.BlockUndo) error {
	var buf bytes.Buffer
	if err := undo.Serialize(&buf); err != nil {
		return err
	}
	return db.ldb.Put(fixedKey(undoPrefix, hash), buf.Bytes(), nil)
}
