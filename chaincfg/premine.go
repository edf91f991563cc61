// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// mainNetPremine is the premine ledger paid out by the mainnet genesis
// coinbase (§5 "Genesis and premine"). Empty here: this network mints its
// entire initial supply through ordinary proof-of-work block rewards
// rather than an in-band genesis distribution.
var mainNetPremine = []TokenPayout{}
