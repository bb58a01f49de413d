// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the guide-tui application.
//
// It contains two concerns that several packages need and none owns:
//
//   - Atomic file writes (AtomicWriteFile): used by config save and
//     conversation export so a crash never leaves a half-written file.
//   - String truncation (TruncateRunes, TruncateWidth): rune- and
//     column-aware truncation for insight titles and previews, backed by
//     go-runewidth so CJK text is measured correctly.
package util
