// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package actions implements the typed action-dispatch protocol between
// assistant replies and the hosting page.
package actions

import (
	"fmt"
	"testing"

	"github.com/quorumhq/guide-tui/internal/model"
)

// =============================================================================
// SELECTION FIXTURES
// =============================================================================

func openLoops(n int) []model.ActionSuggestion {
	out := make([]model.ActionSuggestion, n)
	for i := range out {
		out[i] = model.ActionSuggestion{
			Type:  model.ActionOpenLoop,
			Label: fmt.Sprintf("loop-%d", i),
		}
	}
	return out
}

func others(n int) []model.ActionSuggestion {
	// Cycle through the displayable non-open-loop types.
	types := []model.ActionType{
		model.ActionQuery, model.ActionNavigate, model.ActionShowDetail,
		model.ActionView, model.ActionExport,
	}
	out := make([]model.ActionSuggestion, n)
	for i := range out {
		out[i] = model.ActionSuggestion{
			Type:  types[i%len(types)],
			Label: fmt.Sprintf("other-%d", i),
		}
	}
	return out
}

// =============================================================================
// TRUNCATION TESTS
// =============================================================================

func TestSelectForDisplay_ExpandedBudget(t *testing.T) {
	// 5 open_loop + 10 other in expanded mode: exactly 2 + 6 survive.
	input := append(openLoops(5), others(10)...)

	got := SelectForDisplay(input, true)

	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	// open_loop first, original relative order within each group
	for i := 0; i < 2; i++ {
		if got[i].Label != fmt.Sprintf("loop-%d", i) {
			t.Errorf("slot %d = %q, want loop-%d", i, got[i].Label, i)
		}
	}
	for i := 0; i < 6; i++ {
		if got[2+i].Label != fmt.Sprintf("other-%d", i) {
			t.Errorf("slot %d = %q, want other-%d", 2+i, got[2+i].Label, i)
		}
	}
}

func TestSelectForDisplay_CompactBudget(t *testing.T) {
	input := append(openLoops(3), others(7)...)

	got := SelectForDisplay(input, false)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 1 open_loop + 3 others", len(got))
	}
	if got[0].Type != model.ActionOpenLoop {
		t.Error("open_loop should come first")
	}
}

func TestSelectForDisplay_ExcludesCreateAndFilter(t *testing.T) {
	input := []model.ActionSuggestion{
		{Type: model.ActionCreate, Label: "New task"},
		{Type: model.ActionFilter, Label: "Only overdue"},
		{Type: model.ActionNavigate, Label: "Open tasks"},
	}

	got := SelectForDisplay(input, true)

	if len(got) != 1 || got[0].Type != model.ActionNavigate {
		t.Errorf("create/filter must never reach the quick-action surface, got %+v", got)
	}
}

func TestSelectForDisplay_DropsUnknownTypes(t *testing.T) {
	input := []model.ActionSuggestion{
		{Type: model.ActionType("hologram"), Label: "???"},
		{Type: model.ActionView, Label: "View report"},
	}

	got := SelectForDisplay(input, false)

	if len(got) != 1 || got[0].Label != "View report" {
		t.Errorf("unknown types must fail closed, got %+v", got)
	}
}

func TestSelectForDisplay_InterleavedInputKeepsStableOrder(t *testing.T) {
	input := []model.ActionSuggestion{
		{Type: model.ActionNavigate, Label: "a"},
		{Type: model.ActionOpenLoop, Label: "l1"},
		{Type: model.ActionView, Label: "b"},
		{Type: model.ActionOpenLoop, Label: "l2"},
		{Type: model.ActionQuery, Label: "c"},
	}

	got := SelectForDisplay(input, true)

	want := []string{"l1", "l2", "a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, label := range want {
		if got[i].Label != label {
			t.Errorf("slot %d = %q, want %q", i, got[i].Label, label)
		}
	}
}

func TestSelectForDisplay_Empty(t *testing.T) {
	if got := SelectForDisplay(nil, true); len(got) != 0 {
		t.Errorf("nil input should yield empty output, got %+v", got)
	}
}

// =============================================================================
// CONVERSATION CONTINUATION
// =============================================================================

func TestContinuesConversation(t *testing.T) {
	tests := []struct {
		t    model.ActionType
		want bool
	}{
		{model.ActionQuery, true},
		{model.ActionFilter, true},
		{model.ActionNavigate, false},
		{model.ActionOpenLoop, false},
		{model.ActionExport, false},
	}
	for _, tc := range tests {
		if got := ContinuesConversation(tc.t); got != tc.want {
			t.Errorf("ContinuesConversation(%q) = %v, want %v", tc.t, got, tc.want)
		}
	}
}
