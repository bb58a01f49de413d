// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package actions implements the typed action-dispatch protocol between
// assistant replies and the hosting page.
package actions

import (
	"github.com/quorumhq/guide-tui/internal/model"
)

// =============================================================================
// DISPLAY SELECTION
// =============================================================================

// Display caps for the quick-action surface. Open-loop suggestions get
// their own budget because they are rendered with a distinct treatment.
const (
	MaxOpenLoopCompact  = 1
	MaxOpenLoopExpanded = 2
	MaxOtherCompact     = 3
	MaxOtherExpanded    = 6
)

// SelectForDisplay picks the bounded, ordered subset of suggestions to
// render on the quick-action surface.
//
// Rules, identical for every layout variant:
//   - open_loop items come first, capped at 1 compact / 2 expanded;
//   - every other known type follows except create and filter, which never
//     appear on the quick-action surface (create belongs to page-level
//     flows, filter continues the conversation), capped at 3 compact / 6
//     expanded;
//   - unknown types are dropped (fail closed);
//   - order within each group is the source order (stable).
func SelectForDisplay(suggestions []model.ActionSuggestion, expanded bool) []model.ActionSuggestion {
	maxOpenLoop := MaxOpenLoopCompact
	maxOther := MaxOtherCompact
	if expanded {
		maxOpenLoop = MaxOpenLoopExpanded
		maxOther = MaxOtherExpanded
	}

	var openLoop, other []model.ActionSuggestion
	for _, s := range suggestions {
		switch {
		case !s.Type.Known():
			// A future enum value this client does not understand yet.
		case s.Type == model.ActionOpenLoop:
			if len(openLoop) < maxOpenLoop {
				openLoop = append(openLoop, s)
			}
		case s.Type == model.ActionCreate || s.Type == model.ActionFilter:
			// Excluded from the quick-action surface.
		default:
			if len(other) < maxOther {
				other = append(other, s)
			}
		}
	}

	if len(openLoop) == 0 {
		return other
	}
	return append(openLoop, other...)
}

// ContinuesConversation reports whether activating the suggestion should be
// treated as typing a follow-up rather than dispatching a page behavior.
func ContinuesConversation(t model.ActionType) bool {
	return t == model.ActionQuery || t == model.ActionFilter
}
