// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the headless command-line surface for the guide.
//
// The TUI widget is the primary surface; this package covers the cases
// where a full-screen program is wrong: piping a single question through
// "guide ask", or a readline-style REPL over the same portal API for
// terminals that cannot host Bubble Tea. Output is rendered as markdown
// only when stdout is a TTY so piped output stays clean.
package cli
