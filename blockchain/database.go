// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/novacore/novad/chainhash"

// Database is the persistence contract PersistentView requires of the
// underlying key/value store (§4.3 "UTXO view stack", bottom layer). The
// concrete implementation lives in the database package and is handed in
// by the node at startup; blockchain never imports that package directly
// so the dependency runs the other way, the same interface-at-the-seam
// pattern used for stake.NodeInfo.
type Database interface {
	GetCoins(txid chainhash.Hash) (*CoinEntry, bool)
	SetCoins(txid chainhash.Hash, entry *CoinEntry)
	GetBestBlock() chainhash.Hash
	SetBestBlock(hash chainhash.Hash)
	BatchWriteCoins(entries map[chainhash.Hash]*CoinEntry, bestBlock chainhash.Hash) error
}
