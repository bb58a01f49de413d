// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the guide assistant widget.
//
// This file renders the widget. The closed and minimized states are a
// single line; the open states compose a bordered panel from the header,
// the conversation viewport or the insight feed, the input box, and the
// footer.
package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/quorumhq/guide-tui/internal/guide"
	"github.com/quorumhq/guide-tui/internal/model"
	"github.com/quorumhq/guide-tui/internal/util"
)

const (
	compactPanelWidth  = 64
	expandedPanelWidth = 100
	compactBodyHeight  = 12
)

// =============================================================================
// LAYOUT
// =============================================================================

// resize recomputes the panel geometry from the terminal size and the
// current visibility state, and rebuilds the markdown renderer at the new
// wrap width.
func (m *Model) resize() {
	if m.width <= 0 {
		return
	}

	pw := m.panelWidth()
	inner := pw - 4 // border and padding
	if inner < 20 {
		inner = 20
	}

	bh := compactBodyHeight
	if m.expanded() && m.height > 0 {
		bh = m.height - 10
		if bh < compactBodyHeight {
			bh = compactBodyHeight
		}
	}

	m.viewport.Width = inner
	m.viewport.Height = bh
	m.input.SetWidth(inner - 2)

	m.mdRenderer = nil
	if m.cfg.UI.Markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(inner),
		)
		if err == nil {
			m.mdRenderer = r
		}
	}
}

// panelWidth returns the outer width of the open panel. Below the mobile
// breakpoint the panel becomes a full-width sheet.
func (m Model) panelWidth() int {
	if m.mobile() {
		return m.width
	}
	pw := compactPanelWidth
	if m.expanded() {
		pw = expandedPanelWidth
	}
	if m.width > 0 && pw > m.width-2 {
		pw = m.width - 2
	}
	return pw
}

// refreshViewport rebuilds the conversation transcript. When the message
// count has grown since the last rebuild the viewport scrolls to the first
// line of the newest message, so a reply taller than the panel is read from
// its beginning. Pure re-renders never yank a reader away from history.
func (m *Model) refreshViewport() {
	conv := m.store.Snapshot()
	content, newestStart := m.renderTranscript(conv)
	m.viewport.SetContent(content)

	count := conv.MessageCount()
	if count > m.prevMsgCount {
		// SetYOffset clamps, so a short final message still lands in view.
		m.viewport.SetYOffset(newestStart)
	}
	m.prevMsgCount = count
}

// =============================================================================
// TOP-LEVEL VIEW
// =============================================================================

// View renders the widget for its current visibility state.
func (m Model) View() string {
	switch m.store.Visibility() {
	case guide.VisibilityClosed:
		return m.viewTrigger()
	case guide.VisibilityMinimized:
		return m.viewMinimized()
	default:
		return m.viewPanel()
	}
}

func (m Model) viewTrigger() string {
	return m.theme.TriggerLine.Render("? Ask the Guide") +
		m.theme.TriggerHint.Render("  C-k")
}

func (m Model) viewMinimized() string {
	label := "Guide"
	if n := m.store.MessageCount(); n > 0 {
		label = fmt.Sprintf("Guide (%d)", n)
	}
	return m.theme.MinimizedPill.Render(label) +
		m.theme.TriggerHint.Render("  C-e to restore")
}

func (m Model) viewPanel() string {
	inner := m.viewport.Width

	var sections []string
	sections = append(sections, m.viewHeader(inner))

	if m.store.ShowInsights() {
		sections = append(sections, m.viewInsightFeed(inner))
	} else {
		sections = append(sections, m.viewport.View())
		if bar := m.viewActionBar(inner); bar != "" {
			sections = append(sections, bar)
		}
	}

	if m.store.IsLoading() {
		sections = append(sections,
			m.spinner.View()+" "+m.theme.ThinkingText.Render("Guide is thinking..."))
	}
	if err := m.store.Error(); err != "" {
		sections = append(sections, m.theme.ErrorLine.Render("[X] "+err))
	}
	if m.notice != "" {
		sections = append(sections, m.notice)
	}

	sections = append(sections, m.viewInput(inner))
	sections = append(sections, m.viewFooter(inner))

	body := strings.Join(sections, "\n")
	panel := m.theme.Panel
	if m.mobile() {
		panel = m.theme.PanelMobile
	}
	return panel.Width(m.panelWidth() - 2).Render(body)
}

// =============================================================================
// PANEL SECTIONS
// =============================================================================

func (m Model) viewHeader(width int) string {
	title := m.theme.HeaderTitle.Render("Guide")
	page := ""
	if m.page != "" {
		page = m.theme.HeaderPage.Render(" / " + m.page)
	}
	mode := ""
	if m.expanded() {
		mode = m.theme.HeaderPage.Render(" [expanded]")
	}
	return m.theme.Header.Width(width).Render(title + page + mode)
}

func (m Model) viewInput(width int) string {
	return m.theme.InputContainer.Width(width).Render(m.input.View())
}

func (m Model) viewFooter(width int) string {
	var parts []string
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+h.Desc)
	}
	return m.theme.Footer.Width(width).Render(strings.Join(parts, "  "))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript renders the whole conversation for the viewport. The
// second return value is the transcript line the newest message starts on,
// the scroll target when a message lands.
func (m Model) renderTranscript(conv *model.Conversation) (string, int) {
	if conv.IsEmpty() {
		return m.theme.EmptyState.Render("Ask anything about this page."), 0
	}

	blocks := make([]string, 0, conv.MessageCount())
	newestStart := 0
	for i, msg := range conv.Messages {
		block := m.renderMessage(msg)
		if i < len(conv.Messages)-1 {
			// Lines in this block plus the blank separator line.
			newestStart += strings.Count(block, "\n") + 2
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), newestStart
}

func (m Model) renderMessage(msg *model.Message) string {
	header := msg.Role.DisplayName() + " " +
		m.theme.BasisLine.Render(msg.Timestamp.Format("15:04"))

	content := msg.Content
	bubble := m.theme.GuideBubble
	if msg.Role == model.RoleUser {
		bubble = m.theme.UserBubble
	} else if m.mdRenderer != nil {
		if rendered, err := m.mdRenderer.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}

	out := header + "\n" + bubble.Render(content)

	if len(msg.Sources) > 0 {
		badges := make([]string, 0, len(msg.Sources))
		for _, s := range msg.Sources {
			badges = append(badges, m.theme.SourceBadge.Render(s.Title))
		}
		out += "\n" + strings.Join(badges, " ")
	}
	if msg.DataBasis != nil {
		out += "\n" + m.theme.BasisLine.Render(msg.DataBasis.Summary())
	}
	return out
}

// =============================================================================
// INSIGHT FEED (empty-conversation state)
// =============================================================================

func (m Model) viewInsightFeed(width int) string {
	var sections []string

	if m.store.InsightsLoading() {
		sections = append(sections,
			m.spinner.View()+" "+m.theme.ThinkingText.Render("Loading insights..."))
	} else {
		insights := m.visibleInsights()
		if len(insights) == 0 {
			sections = append(sections,
				m.theme.EmptyState.Render("No insights for this page right now."))
		}
		for i, in := range insights {
			sections = append(sections, m.renderInsight(in, m.focus == focusInsights && i == m.insightIdx, width))
		}
	}

	if chips := m.viewChips(); chips != "" {
		sections = append(sections, "", chips)
	}

	body := strings.Join(sections, "\n")
	return lipgloss.NewStyle().Width(width).Height(m.viewport.Height).Render(body)
}

func (m Model) renderInsight(in model.InsightItem, focused bool, width int) string {
	marker := "  "
	if focused {
		marker = "> "
	}

	// Budget the title around the marker and the count badge so a verbose
	// insight never wraps mid-word or pushes the badge off the panel.
	titleBudget := width - len(marker)
	if in.Count > 0 {
		titleBudget -= 5
	}
	title := m.theme.InsightStyle(in.Type).Render(util.TruncateWidth(in.Title, titleBudget))
	if in.Count > 0 {
		title += " " + m.theme.InsightCount.Render(fmt.Sprintf("%d", in.Count))
	}

	out := marker + title
	if in.Description != "" {
		out += "\n    " + m.theme.InsightDesc.Render(util.TruncateWidth(in.Description, width-4))
	}
	if in.HasAction() && in.ActionLabel != "" {
		out += "\n    " + m.theme.ShortcutKey.Render("Enter") + " " + in.ActionLabel
	}
	return out
}

func (m Model) viewChips() string {
	chips := m.store.Suggestions()
	if len(chips) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(chips))
	for i, c := range chips {
		style := m.theme.SuggestionChip
		if m.focus == focusChips && i == m.chipIdx {
			style = m.theme.SuggestionChipFocused
		}
		rendered = append(rendered, style.Render(c.Text))
	}
	return strings.Join(rendered, " ")
}

// =============================================================================
// ACTION BAR (active-conversation state)
// =============================================================================

func (m Model) viewActionBar(width int) string {
	acts := m.visibleActions()
	if len(acts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(acts))
	for i, a := range acts {
		focused := m.focus == focusActions && i == m.actionIdx
		rendered = append(rendered, m.renderAction(a, focused))
	}
	row := strings.Join(rendered, " ")
	return lipgloss.NewStyle().Width(width).Render(row)
}

func (m Model) renderAction(a model.ActionSuggestion, focused bool) string {
	var style lipgloss.Style
	switch {
	case a.Type == model.ActionOpenLoop && focused:
		style = m.theme.OpenLoopButtonFocused
	case a.Type == model.ActionOpenLoop:
		style = m.theme.OpenLoopButton
	case focused:
		style = m.theme.ActionButtonFocused
	default:
		style = m.theme.ActionButton
	}
	return style.Render(a.Label)
}
