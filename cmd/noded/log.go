// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate"

	"github.com/novacore/novad/blockchain"
	"github.com/novacore/novad/blockchain/stake"
	"github.com/novacore/novad/database"
)

// backendLog is the logging backend every subsystem's logger is created
// from, writing to stdout until initLogRotator layers a rotated log file
// underneath it too.
var backendLog = slog.NewBackend(os.Stdout)

// logRotator manages log file rotation; nil until initLogRotator runs.
var logRotator *logrotate.File

// subsystemLoggers maps each package's logger tag to its slog.Logger, the
// same registry-of-subsystems pattern the teacher's own logger.go uses so
// a single --debuglevel flag can raise or lower every package at once, or
// a specific one via TAG=LEVEL syntax.
var subsystemLoggers = map[string]slog.Logger{
	"BLCH": backendLog.Logger("BLCH"),
	"STKE": backendLog.Logger("STKE"),
	"BDB":  backendLog.Logger("BDB"),
}

func init() {
	wireUpLoggers()
}

// wireUpLoggers hands each package its current subsystem logger. Called
// once at package init and again after initLogRotator rebuilds the
// backend, since a fresh backend means fresh *slog.Logger values.
func wireUpLoggers() {
	blockchain.UseLogger(subsystemLoggers["BLCH"])
	stake.UseLogger(subsystemLoggers["STKE"])
	database.UseLogger(subsystemLoggers["BDB"])
}

// initLogRotator creates a rotating file writer at logFile and rebuilds
// the logging backend to tee output to both stdout and the rotated file.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := logrotate.NewFile(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log rotator: %w", err)
	}
	logRotator = r

	levels := make(map[string]slog.Level, len(subsystemLoggers))
	for tag, logger := range subsystemLoggers {
		levels[tag] = logger.Level()
	}

	backendLog = slog.NewBackend(io.MultiWriter(os.Stdout, r))
	for tag := range subsystemLoggers {
		logger := backendLog.Logger(tag)
		logger.SetLevel(levels[tag])
		subsystemLoggers[tag] = logger
	}
	wireUpLoggers()
	return nil
}

// setLogLevels parses a --debuglevel value, either a single level applied
// to every subsystem ("debug") or a comma-separated list of TAG=LEVEL
// pairs ("BLCH=debug,STKE=trace"), and applies it.
func setLogLevels(levelSpec string) error {
	if level, ok := slog.LevelFromString(levelSpec); ok {
		for _, logger := range subsystemLoggers {
			logger.SetLevel(level)
		}
		return nil
	}

	for _, pair := range splitList(levelSpec, ',') {
		kv := splitList(pair, '=')
		if len(kv) != 2 {
			return fmt.Errorf("invalid debug level specification %q", pair)
		}
		tag, levelStr := kv[0], kv[1]
		logger, ok := subsystemLoggers[tag]
		if !ok {
			return fmt.Errorf("unknown subsystem %q", tag)
		}
		level, ok := slog.LevelFromString(levelStr)
		if !ok {
			return fmt.Errorf("invalid debug level %q for subsystem %q", levelStr, tag)
		}
		logger.SetLevel(level)
	}
	return nil
}

func splitList(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
