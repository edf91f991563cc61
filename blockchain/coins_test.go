// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"testing"

	"github.com/novacore/novad/wire"
)

func testCoinEntry() *CoinEntry {
	return &CoinEntry{
		Version: 1,
		Height:  100,
		Time:    1600000000,
		Outs: []*wire.TxOut{
			{Value: 1000, PkScript: []byte{0x76, 0xa9}},
			{Value: 2000, PkScript: []byte{0x51}},
			{Value: 3000, PkScript: []byte{0xac}},
		},
	}
}

func TestCoinEntrySerializeRoundTrip(t *testing.T) {
	entry := testCoinEntry()
	entry.CoinBase = true

	var buf bytes.Buffer
	if err := entry.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	got := new(CoinEntry)
	if err := got.Deserialize(&buf); err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if got.Version != entry.Version || got.Height != entry.Height || got.Time != entry.Time {
		t.Fatalf("header fields mismatch: got %+v, want %+v", got, entry)
	}
	if got.CoinBase != entry.CoinBase || got.CoinStake != entry.CoinStake {
		t.Fatalf("flag mismatch: got coinbase=%v coinstake=%v, want coinbase=%v coinstake=%v",
			got.CoinBase, got.CoinStake, entry.CoinBase, entry.CoinStake)
	}
	if len(got.Outs) != len(entry.Outs) {
		t.Fatalf("output count mismatch: got %d, want %d", len(got.Outs), len(entry.Outs))
	}
	for i := range entry.Outs {
		if got.Outs[i].Value != entry.Outs[i].Value {
			t.Errorf("output %d value mismatch: got %d, want %d", i, got.Outs[i].Value, entry.Outs[i].Value)
		}
		if !bytes.Equal(got.Outs[i].PkScript, entry.Outs[i].PkScript) {
			t.Errorf("output %d script mismatch", i)
		}
	}
}

func TestCoinEntrySpendAndCleanup(t *testing.T) {
	entry := testCoinEntry()

	if entry.IsPruned() {
		t.Fatal("freshly built entry should not be pruned")
	}

	undo, ok := entry.Spend(2)
	if !ok {
		t.Fatal("expected to spend output 2")
	}
	if undo.Out.Value != 3000 {
		t.Errorf("undo value = %d, want 3000", undo.Out.Value)
	}
	if len(entry.Outs) != 2 {
		t.Fatalf("spending the trailing output should shrink Outs via Cleanup, got len %d", len(entry.Outs))
	}

	if _, ok := entry.Spend(2); ok {
		t.Error("spending an already-trimmed output should fail")
	}

	if _, ok := entry.Spend(0); !ok {
		t.Fatal("expected to spend output 0")
	}
	if entry.IsPruned() {
		t.Fatal("output 1 is still unspent, entry should not be pruned yet")
	}

	if _, ok := entry.Spend(1); !ok {
		t.Fatal("expected to spend output 1")
	}
	if !entry.IsPruned() {
		t.Fatal("every output spent, entry should be pruned")
	}
}

func TestCoinEntryIsAvailable(t *testing.T) {
	entry := testCoinEntry()
	if !entry.IsAvailable(0) {
		t.Error("output 0 should be available")
	}
	if entry.IsAvailable(10) {
		t.Error("out-of-range output should not be available")
	}
	entry.Spend(0)
	if entry.IsAvailable(0) {
		t.Error("spent output should not be available")
	}
}
