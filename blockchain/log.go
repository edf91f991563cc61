// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/decred/slog"

// log is the package-level logger, disabled until UseLogger is called by
// the node's log setup. Every exported entry point logs through it rather
// than the standard library's log package, the teacher's convention for
// every non-trivial package.
var log = slog.Disabled

// UseLogger sets the logger used by this package. It must be called
// before any exported function in this package is used, typically during
// the node's log backend initialization.
func UseLogger(logger slog.Logger) {
	log = logger
}
