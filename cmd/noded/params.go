// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/novacore/novad/chaincfg"
	"github.com/novacore/novad/wire"
)

type params = chaincfg.Params

var mainNetParams = chaincfg.MainNetParams()
var testNetParams = chaincfg.TestNetParams()
var simNetParams = chaincfg.SimNetParams()
var regNetParams = chaincfg.RegNetParams()

// activeNetParams is the parameter set for the currently selected network,
// set once at startup by loadConfig and never mutated afterward.
var activeNetParams = mainNetParams

// netName returns the network's directory-safe name, used to build the
// per-network data and log directories.
func netName(p *params) string {
	switch p.Net {
	case wire.TestNet:
		return "testnet"
	case wire.SimNet:
		return "simnet"
	case wire.RegNet:
		return "regnet"
	default:
		return p.Name
	}
}
