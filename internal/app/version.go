// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"fmt"
	"runtime"
)

// Build information, set with -ldflags "-X ...app.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = ""
)

// PrintVersion prints build information to stdout.
func PrintVersion() {
	fmt.Printf("ozanparquet %s\n", Version)
	fmt.Printf("  commit:     %s\n", Commit)
	if BuildTime != "" {
		fmt.Printf("  built:      %s\n", BuildTime)
	}
	fmt.Printf("  go version: %s\n", runtime.Version())
}
