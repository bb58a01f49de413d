// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the guide widget.
package styles

import (
	"strings"
	"testing"

	"github.com/quorumhq/guide-tui/internal/model"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// Spot-check a few styles are actually configured.
	if !theme.HeaderTitle.GetBold() {
		t.Error("HeaderTitle should be bold")
	}
	if !theme.ErrorLine.GetBold() {
		t.Error("ErrorLine should be bold")
	}
	if theme.UserBubble.GetMarginLeft() == 0 {
		t.Error("UserBubble should be indented from the left")
	}
	if theme.GuideBubble.GetMarginRight() == 0 {
		t.Error("GuideBubble should be indented from the right")
	}
}

func TestApplyThemeMode_ForcesPalette(t *testing.T) {
	ApplyThemeMode("light")
	if NewTheme().IsDark {
		t.Error("light mode should build the light palette")
	}

	ApplyThemeMode("DARK")
	if !NewTheme().IsDark {
		t.Error("dark mode should build the dark palette")
	}

	// Auto keeps whatever the terminal detection decided; it must not
	// flip the pinned background.
	ApplyThemeMode("auto")
	if !NewTheme().IsDark {
		t.Error("auto must not override the previously pinned background")
	}
}

func TestInsightStyle_MapsByType(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		it   model.InsightType
		bold bool
	}{
		{model.InsightWarning, true},
		{model.InsightAction, true},
		{model.InsightInfo, false},
	}
	for _, tc := range tests {
		if got := theme.InsightStyle(tc.it).GetBold(); got != tc.bold {
			t.Errorf("InsightStyle(%q).GetBold() = %v, want %v", tc.it, got, tc.bold)
		}
	}
}

func TestStatusRenderers_IncludeShapeIndicators(t *testing.T) {
	if out := RenderError("send failed"); !strings.Contains(out, "[X]") {
		t.Errorf("RenderError output %q missing shape indicator", out)
	}
	if out := RenderWarning("stale data"); !strings.Contains(out, "[!]") {
		t.Errorf("RenderWarning output %q missing shape indicator", out)
	}
	if out := RenderInfo("note"); !strings.Contains(out, "[i]") {
		t.Errorf("RenderInfo output %q missing shape indicator", out)
	}
}
