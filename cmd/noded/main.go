// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// noded is the process entrypoint: it loads configuration, wires up
// logging, opens the node's on-disk database, and starts the consensus
// engine. It carries no P2P or RPC surface of its own — those are
// out of scope — but brings up every piece a transport layer would sit
// in front of.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/novacore/novad/blockchain"
	"github.com/novacore/novad/database"
)

func noded() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.NoLogRotate {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := initLogRotator(logFile); err != nil {
			return err
		}
	}
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		return err
	}

	db, err := database.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("unable to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			subsystemLoggers["BDB"].Errorf("failed to close database cleanly: %v", err)
		}
	}()

	chain, err := blockchain.New(db, db, cfg.net)
	if err != nil {
		return fmt.Errorf("unable to initialize chain: %w", err)
	}

	height, hash, _ := chain.BestSnapshot()
	subsystemLoggers["BLCH"].Infof("chain state at startup: height %d, tip %s", height, hash)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	subsystemLoggers["BLCH"].Infof("noded started on %s, awaiting interrupt", netName(cfg.net))

	<-interrupt
	subsystemLoggers["BLCH"].Info("received interrupt, shutting down")
	return nil
}

func main() {
	if err := noded(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
