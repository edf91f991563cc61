// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package database

import (
	"testing"

	"github.com/novacore/novad/blockchain"
	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return db
}

func testHash(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func TestDBCoinsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	txid := testHash(1)

	if _, ok := db.GetCoins(txid); ok {
		t.Fatal("expected no entry for an unwritten txid")
	}

	entry := &blockchain.CoinEntry{
		Version: 1,
		Height:  42,
		Time:    1234,
		Outs: []*wire.TxOut{
			{Value: 500, PkScript: []byte{0x51}},
		},
	}
	db.SetCoins(txid, entry)

	got, ok := db.GetCoins(txid)
	if !ok {
		t.Fatal("expected to read back the entry just written")
	}
	if got.Height != entry.Height || got.Time != entry.Time {
		t.Errorf("got %+v, want %+v", got, entry)
	}

	// Spending the only output prunes the entry; writing it back should
	// delete the record rather than leave a pruned one on disk.
	got.Spend(0)
	db.SetCoins(txid, got)
	if _, ok := db.GetCoins(txid); ok {
		t.Fatal("a fully pruned entry should have been deleted, not stored")
	}
}

func TestDBBestBlock(t *testing.T) {
	db := openTestDB(t)

	if got := db.GetBestBlock(); got != (chainhash.Hash{}) {
		t.Errorf("expected the zero hash before anything is set, got %s", got)
	}

	want := testHash(7)
	db.SetBestBlock(want)
	if got := db.GetBestBlock(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDBBatchWriteCoins(t *testing.T) {
	db := openTestDB(t)

	live := testHash(1)
	pruned := testHash(2)
	best := testHash(3)

	db.SetCoins(pruned, &blockchain.CoinEntry{
		Outs: []*wire.TxOut{{Value: 100, PkScript: []byte{0x51}}},
	})
	if _, ok := db.GetCoins(pruned); !ok {
		t.Fatal("setup: expected the pruned-to-be entry to exist before the batch")
	}

	entries := map[chainhash.Hash]*blockchain.CoinEntry{
		live: {
			Version: 1,
			Outs:    []*wire.TxOut{{Value: 900, PkScript: []byte{0x76, 0xa9}}},
		},
		pruned: nil,
	}
	if err := db.BatchWriteCoins(entries, best); err != nil {
		t.Fatalf("batch write: %v", err)
	}

	if _, ok := db.GetCoins(live); !ok {
		t.Error("expected the live entry to be present after the batch")
	}
	if _, ok := db.GetCoins(pruned); ok {
		t.Error("expected the nil entry to delete the record, not leave it in place")
	}
	if got := db.GetBestBlock(); got != best {
		t.Errorf("best block = %s, want %s", got, best)
	}
}

func TestDBBlockAndUndoRoundTrip(t *testing.T) {
	db := openTestDB(t)
	hash := testHash(9)

	if _, err := db.Block(hash); err == nil {
		t.Fatal("expected an error reading a block that was never stored")
	}

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			Timestamp: 1600000000,
			Bits:      0x1d00ffff,
		},
	}
	if err := db.SetBlock(hash, block); err != nil {
		t.Fatalf("set block: %v", err)
	}
	gotBlock, err := db.Block(hash)
	if err != nil {
		t.Fatalf("get block: %v", err)
	}
	if gotBlock.Header.Timestamp != block.Header.Timestamp || gotBlock.Header.Bits != block.Header.Bits {
		t.Errorf("got header %+v, want %+v", gotBlock.Header, block.Header)
	}

	if _, err := db.Undo(hash); err == nil {
		t.Fatal("expected an error reading undo data that was never stored")
	}

	undo := &blockchain.BlockUndo{
		TxUndo: []blockchain.TxUndo{{}, {}},
	}
	if err := db.SetUndo(hash, undo); err != nil {
		t.Fatalf("set undo: %v", err)
	}
	gotUndo, err := db.Undo(hash)
	if err != nil {
		t.Fatalf("get undo: %v", err)
	}
	if len(gotUndo.TxUndo) != len(undo.TxUndo) {
		t.Errorf("got %d tx undo records, want %d", len(gotUndo.TxUndo), len(undo.TxUndo))
	}
}
