// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the guide widget.
//
// All colors use Lip Gloss AdaptiveColor so the widget reads correctly on
// both light and dark terminals. The Theme struct holds one configured
// style per visual element; views never construct styles inline, they
// pull them from the theme. Status glyphs are ASCII so state is legible
// without color.
package styles
