// Package chaincfg defines the consensus parameters distinguishing the
// four supported networks: mainnet, testnet, regnet, and simnet. These
// networks are incompatible with each other (each has its own genesis
// block) and software should handle errors where input intended for one
// network is used on an application instance running on a different one.
//
// For main packages, a (typically global) var may be assigned the return
// value of one of the Params functions for use as the application's
// "active" network. When a network parameter is needed, it may then be
// looked up through this variable (either directly, or hidden in a
// library call).
//
//  package main
//
//  import (
//          "flag"
//          "fmt"
//
//          "github.com/novacore/novad/chaincfg"
//  )
//
//  var testnet = flag.Bool("testnet", false, "operate on the test network")
//
//  // By default (without -testnet), use mainnet.
//  var chainParams = chaincfg.MainNetParams()
//
//  func main() {
//          flag.Parse()
//
//          // Modify active network parameters if operating on testnet.
//          if *testnet {
//                  chainParams = chaincfg.TestNetParams()
//          }
//
//          fmt.Println(chainParams.Name)
//  }
package chaincfg
