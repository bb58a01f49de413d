// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the guide assistant widget.
package widget

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quorumhq/guide-tui/internal/actions"
	"github.com/quorumhq/guide-tui/internal/config"
	"github.com/quorumhq/guide-tui/internal/guide"
	"github.com/quorumhq/guide-tui/internal/model"
	"github.com/quorumhq/guide-tui/internal/portal"
	"github.com/quorumhq/guide-tui/internal/ui/styles"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(config.Default(), styles.NewTheme(), guide.NewStore(), portal.NewClient(), actions.NewRegistry(), nil)
	m.page = "tasks"
	m.width = 120
	m.height = 40
	m.resize()
	return m
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// =============================================================================
// VISIBILITY
// =============================================================================

func TestKeyToggle_OpensAndCloses(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(keyMsg(tea.KeyCtrlK))
	if got := m.store.Visibility(); got != guide.VisibilityCompact {
		t.Fatalf("after toggle: visibility = %v, want compact", got)
	}

	m, _ = m.Update(keyMsg(tea.KeyCtrlK))
	if got := m.store.Visibility(); got != guide.VisibilityClosed {
		t.Fatalf("after second toggle: visibility = %v, want closed", got)
	}
}

func TestKeyEscape_ClosesFromEveryState(t *testing.T) {
	m := newTestModel(t)

	m.store.Toggle()
	m.store.ToggleExpanded()
	m, _ = m.Update(keyMsg(tea.KeyEsc))
	if got := m.store.Visibility(); got != guide.VisibilityClosed {
		t.Fatalf("escape from expanded: visibility = %v, want closed", got)
	}

	// Escape while closed stays closed.
	m, _ = m.Update(keyMsg(tea.KeyEsc))
	if got := m.store.Visibility(); got != guide.VisibilityClosed {
		t.Fatalf("escape while closed: visibility = %v, want closed", got)
	}
}

func TestKeyMinimizeAndRestore(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, _ = m.Update(keyMsg(tea.KeyCtrlN))
	if got := m.store.Visibility(); got != guide.VisibilityMinimized {
		t.Fatalf("after minimize: visibility = %v, want minimized", got)
	}

	m, _ = m.Update(keyMsg(tea.KeyCtrlE))
	if got := m.store.Visibility(); !got.IsOpen() {
		t.Fatalf("after restore: visibility = %v, want open", got)
	}
}

func TestKeyExpand_TogglesLayout(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, _ = m.Update(keyMsg(tea.KeyCtrlE))
	if got := m.store.Visibility(); got != guide.VisibilityExpanded {
		t.Fatalf("after expand: visibility = %v, want expanded", got)
	}

	m, _ = m.Update(keyMsg(tea.KeyCtrlE))
	if got := m.store.Visibility(); got != guide.VisibilityCompact {
		t.Fatalf("after shrink: visibility = %v, want compact", got)
	}
}

// =============================================================================
// SEND PROTOCOL
// =============================================================================

func TestSubmit_StartsSendAndGatesSecond(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, cmd := m.submit("what is overdue?")
	if cmd == nil {
		t.Fatal("first submit returned no command")
	}
	if !m.store.IsLoading() {
		t.Fatal("store should be loading after submit")
	}
	if got := m.store.MessageCount(); got != 1 {
		t.Fatalf("message count = %d, want 1", got)
	}

	// Second submit while in flight is rejected outright.
	m, cmd = m.submit("another question")
	if cmd != nil {
		t.Fatal("second submit should be gated while a send is in flight")
	}
	if got := m.store.MessageCount(); got != 1 {
		t.Fatalf("message count after gated submit = %d, want 1", got)
	}
}

func TestSubmit_BlankQueryRejected(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, cmd := m.submit("   ")
	if cmd != nil {
		t.Fatal("blank submit should return no command")
	}
	if m.store.IsLoading() {
		t.Fatal("blank submit must not start a send")
	}
}

func TestReply_AppendsAndClearsLoading(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	_, gen, ok := m.store.BeginSend("show my tasks")
	if !ok {
		t.Fatal("BeginSend rejected")
	}

	m, _ = m.Update(assistantReplyMsg{
		Gen:  gen,
		Resp: &portal.AskResponse{Answer: "You have 3 open tasks."},
	})

	if m.store.IsLoading() {
		t.Fatal("loading should clear after reply")
	}
	if got := m.store.MessageCount(); got != 2 {
		t.Fatalf("message count = %d, want 2", got)
	}
}

func TestReply_StaleGenerationDropped(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	_, gen, _ := m.store.BeginSend("first question")
	m.store.ClearConversation()
	m.prevMsgCount = 0

	m, _ = m.Update(assistantReplyMsg{
		Gen:  gen,
		Resp: &portal.AskResponse{Answer: "answer to a cleared conversation"},
	})

	if got := m.store.MessageCount(); got != 0 {
		t.Fatalf("stale reply applied: message count = %d, want 0", got)
	}
	if m.store.IsLoading() {
		t.Fatal("cleared conversation must not be loading")
	}
}

func TestSubmit_DisablesInputUntilSendSettles(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, _ = m.submit("what is overdue?")
	if m.input.Focused() {
		t.Fatal("compose box should blur while a send is in flight")
	}
	if m.input.Placeholder != inputWaitingPlaceholder {
		t.Fatalf("placeholder = %q, want the waiting cue", m.input.Placeholder)
	}

	// Keys routed to the blurred box must not accumulate text.
	m, _ = m.Update(runeMsg('x'))
	if got := m.input.Value(); got != "" {
		t.Fatalf("blurred input accepted text %q", got)
	}

	// The generation starts at zero; only clears bump it.
	m, _ = m.Update(assistantReplyMsg{Gen: 0, Resp: &portal.AskResponse{Answer: "done"}})
	if !m.input.Focused() {
		t.Fatal("compose box should re-enable after the reply")
	}
	if m.input.Placeholder != inputPlaceholder {
		t.Fatalf("placeholder = %q, want the ask prompt back", m.input.Placeholder)
	}
}

func TestSendFailed_ReenablesInput(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, _ = m.submit("unreachable question")
	m, _ = m.Update(sendFailedMsg{Gen: 0, Err: portal.ErrUnreachable})

	if !m.input.Focused() {
		t.Fatal("compose box should re-enable after a failed send")
	}
	if m.input.Placeholder != inputPlaceholder {
		t.Fatalf("placeholder = %q, want the ask prompt back", m.input.Placeholder)
	}
}

func TestSendFailed_SurfacesErrorKeepsUserMessage(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	_, gen, _ := m.store.BeginSend("unreachable question")
	m, _ = m.Update(sendFailedMsg{Gen: gen, Err: portal.ErrUnreachable})

	if m.store.IsLoading() {
		t.Fatal("loading should clear after failure")
	}
	if m.store.Error() == "" {
		t.Fatal("failure should surface an error banner")
	}
	if got := m.store.MessageCount(); got != 1 {
		t.Fatalf("user message should survive the failure, count = %d", got)
	}
}

// =============================================================================
// SCROLL POLICY
// =============================================================================

// newestMessageVisible reports whether the first transcript line of the
// newest message is inside the viewport window.
func newestMessageVisible(m Model) bool {
	_, start := m.renderTranscript(m.store.Snapshot())
	return start >= m.viewport.YOffset && start < m.viewport.YOffset+m.viewport.Height
}

func TestRefreshViewport_ScrollsOnlyOnNewMessages(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()
	m.cfg.UI.Markdown = false // plain transcript keeps line counts literal
	m.resize()
	m.viewport.Height = 4

	for i := 0; i < 6; i++ {
		_, gen, ok := m.store.BeginSend("question")
		if !ok {
			t.Fatal("BeginSend rejected")
		}
		if !m.store.FinishSend(gen, model.NewAssistantMessage(
			strings.Repeat("line\n", 4), nil, nil, nil)) {
			t.Fatal("FinishSend rejected")
		}
	}

	m.refreshViewport()
	_, wantStart := m.renderTranscript(m.store.Snapshot())
	if m.viewport.YOffset != wantStart {
		t.Fatalf("after new messages YOffset = %d, want the newest message's first line %d",
			m.viewport.YOffset, wantStart)
	}

	// The reader scrolls back; a rebuild without new messages must not
	// yank them away.
	m.viewport.GotoTop()
	m.refreshViewport()
	if m.viewport.YOffset != 0 {
		t.Fatal("rebuild without new messages must preserve scroll position")
	}

	_, gen, _ := m.store.BeginSend("one more")
	m.store.FinishSend(gen, model.NewAssistantMessage("done", nil, nil, nil))
	m.refreshViewport()
	if !newestMessageVisible(m) {
		t.Fatalf("a new message should scroll its first line into view, YOffset = %d",
			m.viewport.YOffset)
	}
}

// A reply taller than the viewport must be presented from its first line,
// so the reader starts at the beginning instead of the tail.
func TestRefreshViewport_LongReplyStartsAtItsFirstLine(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()
	m.cfg.UI.Markdown = false
	m.resize()
	m.viewport.Height = 6

	_, gen, ok := m.store.BeginSend("summarize the meeting")
	if !ok {
		t.Fatal("BeginSend rejected")
	}
	if !m.store.FinishSend(gen, model.NewAssistantMessage(
		strings.Repeat("a point\n", 30), nil, nil, nil)) {
		t.Fatal("FinishSend rejected")
	}
	m.refreshViewport()

	_, wantStart := m.renderTranscript(m.store.Snapshot())
	if m.viewport.YOffset != wantStart {
		t.Fatalf("YOffset = %d, want %d (the reply's first line)",
			m.viewport.YOffset, wantStart)
	}
	if m.viewport.AtBottom() {
		t.Fatal("a reply taller than the viewport must not open at its last line")
	}
}

// =============================================================================
// FEEDS
// =============================================================================

func TestInsightsMsg_IgnoresOtherPages(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(insightsMsg{
		Page:     "budget",
		Insights: []model.InsightItem{{ID: "b1", Type: model.InsightInfo, Title: "Budget note"}},
	})
	if got := len(m.store.Insights()); got != 0 {
		t.Fatalf("insights for another page applied, len = %d", got)
	}

	m, _ = m.Update(insightsMsg{
		Page:     "tasks",
		Insights: []model.InsightItem{{ID: "t1", Type: model.InsightWarning, Title: "3 overdue"}},
	})
	if got := len(m.store.Insights()); got != 1 {
		t.Fatalf("insights for current page dropped, len = %d", got)
	}
}

func TestInsightFeed_HiddenOnceConversationStarts(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()
	m.store.SetInsights([]model.InsightItem{{ID: "t1", Type: model.InsightInfo, Title: "note"}})

	if !m.store.ShowInsights() {
		t.Fatal("empty conversation should show the insight feed")
	}

	m, _ = m.submit("hello")
	if m.store.ShowInsights() {
		t.Fatal("feed must hide once the conversation has messages")
	}
}

func TestVisibleInsights_CappedByLayout(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	items := make([]model.InsightItem, 6)
	for i := range items {
		items[i] = model.InsightItem{ID: string(rune('a' + i)), Type: model.InsightInfo, Title: "x"}
	}
	m.store.SetInsights(items)

	if got := len(m.visibleInsights()); got != m.cfg.UI.MaxInsightsCompact {
		t.Fatalf("compact cap: got %d, want %d", got, m.cfg.UI.MaxInsightsCompact)
	}

	m.store.ToggleExpanded()
	if got := len(m.visibleInsights()); got != m.cfg.UI.MaxInsightsExpanded {
		t.Fatalf("expanded cap: got %d, want %d", got, m.cfg.UI.MaxInsightsExpanded)
	}
}

func TestSetConfig_AppliesReloadedSettings(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	items := make([]model.InsightItem, 6)
	for i := range items {
		items[i] = model.InsightItem{ID: string(rune('a' + i)), Type: model.InsightInfo, Title: "x"}
	}
	m.store.SetInsights(items)

	next := config.Default()
	next.UI.MaxInsightsCompact = 5
	next.UI.MaxInsightsExpanded = 6
	next.UI.MobileColumns = 150
	m.SetConfig(next)

	if got := len(m.visibleInsights()); got != 5 {
		t.Fatalf("insight cap after reload = %d, want 5", got)
	}
	// The 120-column terminal is now below the sheet breakpoint.
	if got := m.panelWidth(); got != m.width {
		t.Fatalf("panel width after reload = %d, want full width %d", got, m.width)
	}
}

func TestRenderInsight_FitsPanelWidth(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	long := strings.Repeat("overdue committee item ", 10)
	out := m.renderInsight(model.InsightItem{
		ID:          "w1",
		Type:        model.InsightWarning,
		Title:       long,
		Description: long,
		Count:       12,
	}, false, 40)

	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("insight line width = %d, want <= 40: %q", w, line)
		}
	}
}

// =============================================================================
// ACTION DISPATCH
// =============================================================================

func TestActivateAction_QueryContinuesConversation(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, cmd := m.activateAction(model.ActionSuggestion{
		Type: model.ActionQuery, Label: "Show details",
	})
	if cmd == nil {
		t.Fatal("query action should start a send")
	}
	if !m.store.IsLoading() {
		t.Fatal("query action should put the store in flight")
	}
	if got := m.store.MessageCount(); got != 1 {
		t.Fatalf("query action should append the label as a user turn, count = %d", got)
	}
}

func TestActivateAction_NavigateDispatchesToHost(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	var gotLabel string
	m.registry.Register(model.ActionNavigate, func(s model.ActionSuggestion) error {
		gotLabel = s.Label
		return nil
	})

	m, cmd := m.activateAction(model.ActionSuggestion{
		Type: model.ActionNavigate, Label: "Go to tasks",
	})
	if cmd == nil {
		t.Fatal("navigate action should produce a dispatch command")
	}
	if m.store.IsLoading() {
		t.Fatal("navigate action must not start a send")
	}

	if msg := cmd(); msg != nil {
		t.Fatalf("successful dispatch should return nil msg, got %T", msg)
	}
	if gotLabel != "Go to tasks" {
		t.Fatalf("handler saw label %q", gotLabel)
	}
}

func TestActivateAction_UnhandledSurfacesNotice(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m, cmd := m.activateAction(model.ActionSuggestion{
		Type: model.ActionExport, Label: "Export CSV",
	})
	if cmd == nil {
		t.Fatal("dispatch command expected")
	}

	msg := cmd()
	failed, ok := msg.(actionFailedMsg)
	if !ok {
		t.Fatalf("expected actionFailedMsg, got %T", msg)
	}
	m, _ = m.Update(failed)
	if m.notice == "" {
		t.Fatal("unhandled action should surface a notice")
	}
}

// =============================================================================
// LAYOUT
// =============================================================================

func TestPanelWidth_MobileBreakpoint(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()

	m.width = m.cfg.UI.MobileColumns
	if got := m.panelWidth(); got != m.width {
		t.Fatalf("at breakpoint: panel width = %d, want full width %d", got, m.width)
	}

	m.width = m.cfg.UI.MobileColumns + 20
	if got := m.panelWidth(); got == m.width {
		t.Fatal("above breakpoint the panel should be anchored, not full width")
	}
}

func TestView_StatesRenderDistinctSurfaces(t *testing.T) {
	m := newTestModel(t)

	if out := m.View(); !strings.Contains(out, "Ask the Guide") {
		t.Errorf("closed view missing trigger, got %q", out)
	}

	m.store.Toggle()
	m.store.Minimize()
	if out := m.View(); !strings.Contains(out, "Guide") {
		t.Errorf("minimized view missing pill, got %q", out)
	}

	m.store.Expand()
	m.resize()
	m.refreshViewport()
	if out := m.View(); !strings.Contains(out, "tasks") {
		t.Errorf("open view missing page context, got %q", out)
	}
}

// Rune keys typed into the input must not trigger single-letter list
// bindings while the input zone has focus.
func TestInputFocus_TypingDoesNotDismiss(t *testing.T) {
	m := newTestModel(t)
	m.store.Toggle()
	m.store.SetInsights([]model.InsightItem{{ID: "d1", Type: model.InsightInfo, Title: "keep me"}})

	m, _ = m.Update(runeMsg('d'))
	if got := len(m.store.Insights()); got != 1 {
		t.Fatalf("typing 'd' dismissed an insight, len = %d", got)
	}
}
