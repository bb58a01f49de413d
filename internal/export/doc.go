// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes guide conversations to shareable files.
//
// Three formats are supported: Markdown (with YAML frontmatter), JSON (a
// faithful dump suitable for re-import), and standalone HTML with
// syntax-highlighted code blocks. Citation sources and the data-basis
// provenance line survive the export; a reader of the file can still see
// what records an answer was based on.
package export
