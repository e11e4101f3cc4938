// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xlog is the engine's ambient logging layer, grounded on the
// a package-level logger configured once at startup, Warning for
// non-fatal geometric edge cases and Fatalf for structural errors that
// must abort the process.
package xlog

import (
	"log"
	"os"

	"github.com/cpmech/gosl/utl"
)

// Config controls the logger's verbosity and, for back-ends that shard
// work across goroutines, how many of them may log concurrently without
// interleaving a line (NumThreads is advisory; the stdlib logger already
// serializes writes).
type Config struct {
	Verbose    bool
	NumThreads int
}

var (
	verbose = false
	logger  = log.New(os.Stderr, "", log.LstdFlags)
)

// Init configures the package logger. Call it once, at process start;
// xlog is not safe to reconfigure mid-run.
func Init(cfg Config) {
	verbose = cfg.Verbose
}

// Warning reports a non-fatal numerical edge case (coplanar ray,
// degenerate triangle, zero-length direction): the candidate is rejected
// by the caller, but a verbose run still wants to see why.
func Warning(format string, a ...interface{}) {
	if !verbose {
		return
	}
	logger.Print("WARNING: " + utl.Sf(format, a...))
}

// Fatalf logs a structural error (adapter/driver topology inconsistency,
// unknown volume or back-end) and aborts the process.
func Fatalf(format string, a ...interface{}) {
	logger.Fatalf("FATAL: %s", utl.Sf(format, a...))
}
