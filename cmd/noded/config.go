// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "noded.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "noded.log"
	defaultMaxLogRolls    = 8
)

var (
	defaultHomeDir    = appDataDir("noded", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(defaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options for noded, parsed from the
// command line with jessevdk/go-flags. The configfile option is accepted,
// but no config file is read.
type config struct {
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir     string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}"`
	TestNet     bool   `long:"testnet" description:"Use the test network"`
	SimNet      bool   `long:"simnet" description:"Use the simulation test network"`
	RegNet      bool   `long:"regnet" description:"Use the regression test network"`
	NoLogRotate bool   `long:"nologrotate" description:"Disable log file rotation"`

	net *params
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleaning the result.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir := filepath.Dir(defaultHomeDir)
		path = homeDir + path[1:]
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// loadConfig reads flags from the command line, applying defaults for
// anything unset and resolving exactly one active network. It does not
// read a config file.
func loadConfig() (*config, []string, error) {
	cfg := config{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}

	preParser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	remainingArgs, err := preParser.Parse()
	if err != nil {
		return nil, nil, err
	}

	numNets := 0
	if cfg.TestNet {
		numNets++
	}
	if cfg.SimNet {
		numNets++
	}
	if cfg.RegNet {
		numNets++
	}
	if numNets > 1 {
		return nil, nil, fmt.Errorf("only one of --testnet, --simnet, or --regnet may be specified")
	}

	net := mainNetParams
	switch {
	case cfg.TestNet:
		net = testNetParams
	case cfg.SimNet:
		net = simNetParams
	case cfg.RegNet:
		net = regNetParams
	}
	cfg.net = net
	activeNetParams = net

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	cfg.DataDir = filepath.Join(cfg.DataDir, netName(net))
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.LogDir = filepath.Join(cfg.LogDir, netName(net))

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("unable to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("unable to create log directory: %w", err)
	}

	return &cfg, remainingArgs, nil
}

// appDataDir mirrors the btcsuite/Decred convention for locating a
// per-user application data directory without a third-party dependency:
// a dotfile-style directory under the user's home. The roaming argument is
// kept for API parity with the teacher's helper even though this node has
// no Windows roaming-profile distinction to make.
func appDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, "."+appName)
}
