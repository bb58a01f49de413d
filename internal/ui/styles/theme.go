// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the guide widget.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/quorumhq/guide-tui/internal/model"
)

// Theme holds all the styled components for the widget.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// TRIGGER AND PILL STYLES (closed / minimized states)
	// ==========================================================================

	TriggerLine   lipgloss.Style
	TriggerHint   lipgloss.Style
	MinimizedPill lipgloss.Style

	// ==========================================================================
	// PANEL STYLES (open states)
	// ==========================================================================

	Panel       lipgloss.Style
	PanelMobile lipgloss.Style
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderPage  lipgloss.Style
	Footer      lipgloss.Style
	ShortcutKey lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	GuideBubble lipgloss.Style
	SourceBadge lipgloss.Style
	BasisLine   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// ACTION STYLES
	// ==========================================================================

	SuggestionChip        lipgloss.Style
	SuggestionChipFocused lipgloss.Style
	ActionButton          lipgloss.Style
	ActionButtonFocused   lipgloss.Style
	OpenLoopButton        lipgloss.Style
	OpenLoopButtonFocused lipgloss.Style

	// ==========================================================================
	// INSIGHT FEED STYLES
	// ==========================================================================

	InsightWarning lipgloss.Style
	InsightInfo    lipgloss.Style
	InsightAction  lipgloss.Style
	InsightTitle   lipgloss.Style
	InsightDesc    lipgloss.Style
	InsightCount   lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	ErrorLine    lipgloss.Style
	EmptyState   lipgloss.Style
}

// ApplyThemeMode pins the background the adaptive palette resolves
// against. "dark" and "light" force the corresponding half of every
// AdaptiveColor; "auto" keeps terminal background detection. Call before
// NewTheme so IsDark agrees with the rendered colors.
func ApplyThemeMode(mode string) {
	switch strings.ToLower(mode) {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Trigger and pill
	t.TriggerLine = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.TriggerHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MinimizedPill = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 2)

	// Panel
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 1)

	t.PanelMobile = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Indigo).
		Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.HeaderPage = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.GuideBubble = lipgloss.NewStyle().
		Foreground(GuideBubbleFg).
		Background(GuideBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(GuideBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.SourceBadge = lipgloss.NewStyle().
		Foreground(Teal).
		Background(TealDeep).
		Padding(0, 1)

	t.BasisLine = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Actions
	t.SuggestionChip = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SuggestionChipFocused = t.SuggestionChip.
		Foreground(TextPrimary).
		Background(SelectionBg).
		BorderForeground(FocusRing)

	t.ActionButton = lipgloss.NewStyle().
		Foreground(Teal).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(0, 1)

	t.ActionButtonFocused = t.ActionButton.
		Foreground(TextInverse).
		Background(Teal).
		Bold(true)

	// Open-loop actions get a distinct, louder treatment.
	t.OpenLoopButton = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Amber).
		Padding(0, 1)

	t.OpenLoopButtonFocused = t.OpenLoopButton.
		Foreground(TextInverse).
		Background(Amber)

	// Insight feed
	t.InsightWarning = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.InsightInfo = lipgloss.NewStyle().
		Foreground(Indigo)

	t.InsightAction = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.InsightTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InsightDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.InsightCount = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Padding(0, 1).
		Bold(true)

	// Status
	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.ErrorLine = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Align(lipgloss.Center)
}

// InsightStyle returns the glyph style for an insight type.
func (t *Theme) InsightStyle(it model.InsightType) lipgloss.Style {
	switch it {
	case model.InsightWarning:
		return t.InsightWarning
	case model.InsightAction:
		return t.InsightAction
	default:
		return t.InsightInfo
	}
}
