// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// CurrentNetwork identifies which of the four known networks a node is
// participating in, used to pick the matching chaincfg.Params and (once a
// P2P layer exists) the magic bytes that prefix every wire message.
type CurrentNetwork uint32

// Network magics. Values are this project's own, chosen to be distinct
// from Bitcoin-family networks they might otherwise collide with on a
// shared port.
const (
	MainNet CurrentNetwork = 0xa2f7c1d4
	TestNet CurrentNetwork = 0x0b11ce02
	RegNet  CurrentNetwork = 0x5a0d9f3e
	SimNet  CurrentNetwork = 0x12141c16
)

var networkNames = map[CurrentNetwork]string{
	MainNet: "mainnet",
	TestNet: "testnet",
	RegNet:  "regnet",
	SimNet:  "simnet",
}

// String returns the network's human-readable name.
func (n CurrentNetwork) String() string {
	if s, ok := networkNames[n]; ok {
		return s
	}
	return "unknown"
}
