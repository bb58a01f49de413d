// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the guide assistant widget.
package widget

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/quorumhq/guide-tui/internal/actions"
	"github.com/quorumhq/guide-tui/internal/config"
	"github.com/quorumhq/guide-tui/internal/export"
	"github.com/quorumhq/guide-tui/internal/guide"
	"github.com/quorumhq/guide-tui/internal/model"
	"github.com/quorumhq/guide-tui/internal/portal"
	"github.com/quorumhq/guide-tui/internal/state"
	"github.com/quorumhq/guide-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS ZONES
// =============================================================================

// focusZone identifies which control group owns keyboard input while the
// panel is open. Tab cycles through the zones that are currently visible.
type focusZone int

const (
	focusInput focusZone = iota
	focusChips
	focusInsights
	focusActions
)

// Compose box placeholders. The waiting text doubles as the visible cue
// that the input is disabled while a send is in flight.
const (
	inputPlaceholder        = "Ask about this page..."
	inputWaitingPlaceholder = "Waiting for the Guide..."
)

// =============================================================================
// WIDGET MODEL
// =============================================================================

// Model is the Bubble Tea model for the guide widget.
type Model struct {
	theme  *styles.Theme
	keyMap KeyMap
	cfg    *config.Config

	// Collaborators
	store      *guide.Store
	client     *portal.Client
	registry   *actions.Registry
	dismissals *state.DismissalStore

	// Page context
	page string

	// Layout
	width  int
	height int

	// UI components
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	// Markdown rendering (nil when markdown is disabled or unavailable)
	mdRenderer *glamour.TermRenderer

	// Scroll-to-latest bookkeeping: the viewport snaps to the newest
	// message only when the message count has grown.
	prevMsgCount int

	// Focus ring
	focus      focusZone
	chipIdx    int
	insightIdx int
	actionIdx  int

	// Transient notice line (export results, action failures)
	notice string
}

// New creates a guide widget. The dismissal store may be nil; dismissals
// then last only for the process lifetime.
func New(cfg *config.Config, theme *styles.Theme, store *guide.Store, client *portal.Client, registry *actions.Registry, dismissals *state.DismissalStore) Model {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.Prompt = "> "
	ta.CharLimit = 2000
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Focus()

	vp := viewport.New(60, 12)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 12,
	}
	sp.Style = theme.Spinner

	return Model{
		theme:      theme,
		keyMap:     DefaultKeyMap(),
		cfg:        cfg,
		store:      store,
		client:     client,
		registry:   registry,
		dismissals: dismissals,
		viewport:   vp,
		input:      ta,
		spinner:    sp,
		focus:      focusInput,
	}
}

// SetPage switches the widget to a new page context and returns the
// commands that refresh the page-scoped insight feed and suggestion chips.
func (m *Model) SetPage(page string) tea.Cmd {
	m.page = page
	m.store.SetPage(page)
	m.store.SetInsightsLoading(true)
	m.notice = ""
	m.resetFocus()

	timeout := m.cfg.Timeout()
	return tea.Batch(
		fetchInsightsCmd(m.client, timeout, page),
		fetchSuggestionsCmd(m.client, timeout, page),
	)
}

// Page returns the current page context.
func (m Model) Page() string {
	return m.page
}

// SetConfig applies a freshly reloaded configuration. Timeouts and feed
// caps are read from the config on use; the layout and markdown renderer
// are derived state and must be recomputed here.
func (m *Model) SetConfig(cfg *config.Config) {
	m.cfg = cfg
	m.resize()
	m.refreshViewport()
}

// Init returns the widget's startup command.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// UPDATE
// =============================================================================

// Update processes one message. The host embeds the widget, so Update
// returns the concrete type rather than tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.store.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case assistantReplyMsg:
		reply := model.NewAssistantMessage(
			msg.Resp.Answer, msg.Resp.Sources, msg.Resp.DataBasis, msg.Resp.Suggestions)
		if m.store.FinishSend(msg.Gen, reply) {
			m.refreshViewport()
			m.resetFocus()
		}
		m.restoreInput()
		return m, nil

	case sendFailedMsg:
		m.store.FailSend(msg.Gen, msg.Err)
		m.restoreInput()
		return m, nil

	case insightsMsg:
		if msg.Page != m.page {
			return m, nil
		}
		insights := msg.Insights
		if m.dismissals != nil {
			insights = m.dismissals.Filter(m.page, insights)
		}
		m.store.SetInsights(insights)
		return m, nil

	case suggestionsMsg:
		if msg.Page != m.page {
			return m, nil
		}
		m.store.SetSuggestions(msg.Suggestions)
		return m, nil

	case actionFailedMsg:
		m.notice = styles.RenderWarning("That action is not available here")
		return m, nil

	case exportDoneMsg:
		if msg.Err != nil {
			m.notice = styles.RenderError("Export failed: " + msg.Err.Error())
		} else {
			m.notice = styles.RenderInfo("Exported to " + msg.Path)
		}
		return m, nil
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	vis := m.store.Visibility()

	// Visibility transitions work from every state.
	switch {
	case matches(msg, m.keyMap.Toggle):
		m.store.Toggle()
		if m.store.Visibility().IsOpen() {
			m.resize()
			m.refreshViewport()
		}
		return m, nil

	case matches(msg, m.keyMap.Close):
		// Escape is close everywhere, and a no-op when already closed.
		m.store.Close()
		return m, nil
	}

	switch {
	case vis == guide.VisibilityMinimized:
		if matches(msg, m.keyMap.Expand) || msg.String() == "enter" {
			m.store.Expand()
			m.resize()
			m.refreshViewport()
		}
		return m, nil

	case !vis.IsOpen():
		return m, nil
	}

	// Open panel keys.
	switch {
	case matches(msg, m.keyMap.Minimize):
		m.store.Minimize()
		return m, nil

	case matches(msg, m.keyMap.Expand):
		m.store.ToggleExpanded()
		m.resize()
		m.refreshViewport()
		return m, nil

	case matches(msg, m.keyMap.Clear):
		m.store.ClearConversation()
		m.prevMsgCount = 0
		m.refreshViewport()
		m.resetFocus()
		return m, nil

	case matches(msg, m.keyMap.Export):
		return m, m.exportCmd()

	case matches(msg, m.keyMap.FocusNext):
		m.cycleFocus(1)
		return m, nil

	case matches(msg, m.keyMap.FocusPrev):
		m.cycleFocus(-1)
		return m, nil
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	case focusChips:
		return m.handleChipKey(msg)
	case focusInsights:
		return m.handleInsightKey(msg)
	case focusActions:
		return m.handleActionKey(msg)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case matches(msg, m.keyMap.Submit):
		return m.submit(m.input.Value())

	case matches(msg, m.keyMap.NewLine):
		m.input.InsertString("\n")
		return m, nil

	case matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	// Typing a new message dismisses a lingering send error.
	if m.store.Error() != "" {
		m.store.DismissError()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleChipKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	chips := m.store.Suggestions()
	switch {
	case matches(msg, m.keyMap.Up):
		m.chipIdx = clampIndex(m.chipIdx-1, len(chips))
	case matches(msg, m.keyMap.Down):
		m.chipIdx = clampIndex(m.chipIdx+1, len(chips))
	case matches(msg, m.keyMap.Activate):
		if m.chipIdx < len(chips) {
			return m.submit(chips[m.chipIdx].Text)
		}
	}
	return m, nil
}

func (m Model) handleInsightKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	insights := m.visibleInsights()
	switch {
	case matches(msg, m.keyMap.Up):
		m.insightIdx = clampIndex(m.insightIdx-1, len(insights))
	case matches(msg, m.keyMap.Down):
		m.insightIdx = clampIndex(m.insightIdx+1, len(insights))
	case matches(msg, m.keyMap.Dismiss):
		if m.insightIdx < len(insights) {
			in := insights[m.insightIdx]
			m.store.DismissInsight(in.ID)
			if m.dismissals != nil {
				// Persistence failure only loses the dismissal across
				// restarts; ignore it.
				_ = m.dismissals.Dismiss(m.page, in.ID)
			}
			m.insightIdx = clampIndex(m.insightIdx, len(insights)-1)
		}
	case matches(msg, m.keyMap.Activate):
		if m.insightIdx < len(insights) && insights[m.insightIdx].HasAction() {
			return m.submit(insights[m.insightIdx].ActionQuery)
		}
	}
	return m, nil
}

func (m Model) handleActionKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	acts := m.visibleActions()
	switch {
	case matches(msg, m.keyMap.Up):
		m.actionIdx = clampIndex(m.actionIdx-1, len(acts))
	case matches(msg, m.keyMap.Down):
		m.actionIdx = clampIndex(m.actionIdx+1, len(acts))
	case matches(msg, m.keyMap.Activate):
		if m.actionIdx < len(acts) {
			return m.activateAction(acts[m.actionIdx])
		}
	}
	return m, nil
}

// =============================================================================
// SEND PROTOCOL
// =============================================================================

// submit starts one send. The store enforces the at-most-one-in-flight
// gate; a rejected send leaves everything untouched.
func (m Model) submit(text string) (Model, tea.Cmd) {
	_, gen, ok := m.store.BeginSend(text)
	if !ok {
		return m, nil
	}

	// Blur the compose box for the duration of the send; the placeholder
	// tells the user why typing is on hold. The store gate stays the
	// authority, this is the visible half of it.
	m.input.Reset()
	m.input.Blur()
	m.input.Placeholder = inputWaitingPlaceholder
	m.refreshViewport()
	m.focus = focusInput

	return m, tea.Batch(
		m.spinner.Tick,
		askCmd(m.client, m.cfg.Timeout(), gen, text, m.page),
	)
}

// activateAction routes one quick action. Query-like actions continue the
// conversation as if the user had typed the label; everything else is
// dispatched to the host's handler for that type.
func (m Model) activateAction(s model.ActionSuggestion) (Model, tea.Cmd) {
	if actions.ContinuesConversation(s.Type) {
		return m.submit(s.Label)
	}

	registry := m.registry
	return m, func() tea.Msg {
		if err := registry.Dispatch(s); err != nil {
			return actionFailedMsg{Err: err}
		}
		return nil
	}
}

// exportCmd writes the conversation snapshot to a Markdown file.
func (m Model) exportCmd() tea.Cmd {
	snapshot := m.store.Snapshot()
	if snapshot.IsEmpty() {
		return nil
	}
	return func() tea.Msg {
		opts := export.DefaultOptions()
		path, err := export.ExportToFile(snapshot, export.NewMarkdownExporter(opts), opts)
		return exportDoneMsg{Path: path, Err: err}
	}
}

// =============================================================================
// FOCUS RING
// =============================================================================

// focusOrder returns the zones that are currently interactive.
func (m Model) focusOrder() []focusZone {
	zones := []focusZone{focusInput}
	if m.store.ShowInsights() {
		if len(m.store.Suggestions()) > 0 {
			zones = append(zones, focusChips)
		}
		if len(m.visibleInsights()) > 0 {
			zones = append(zones, focusInsights)
		}
	} else if len(m.visibleActions()) > 0 {
		zones = append(zones, focusActions)
	}
	return zones
}

func (m *Model) cycleFocus(dir int) {
	zones := m.focusOrder()
	cur := 0
	for i, z := range zones {
		if z == m.focus {
			cur = i
			break
		}
	}
	next := (cur + dir + len(zones)) % len(zones)
	m.focus = zones[next]
	if m.focus == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// restoreInput re-enables the compose box once a send has settled, whether
// the reply landed, failed, or was dropped as stale.
func (m *Model) restoreInput() {
	m.input.Placeholder = inputPlaceholder
	if m.focus == focusInput {
		m.input.Focus()
	}
}

func (m *Model) resetFocus() {
	m.focus = focusInput
	m.chipIdx = 0
	m.insightIdx = 0
	m.actionIdx = 0
	m.input.Focus()
}

// =============================================================================
// DERIVED VIEWS OF STORE STATE
// =============================================================================

// visibleActions returns the bounded action set for the latest assistant
// message.
func (m Model) visibleActions() []model.ActionSuggestion {
	last := m.store.Snapshot().GetLastAssistantMessage()
	if last == nil {
		return nil
	}
	return actions.SelectForDisplay(last.Suggestions, m.expanded())
}

// visibleInsights returns the insight feed capped for the current layout.
func (m Model) visibleInsights() []model.InsightItem {
	insights := m.store.Insights()
	limit := m.cfg.UI.MaxInsightsCompact
	if m.expanded() {
		limit = m.cfg.UI.MaxInsightsExpanded
	}
	if len(insights) > limit {
		insights = insights[:limit]
	}
	return insights
}

func (m Model) expanded() bool {
	return m.store.Visibility() == guide.VisibilityExpanded
}

// mobile reports whether the terminal is below the sheet breakpoint.
func (m Model) mobile() bool {
	return m.width > 0 && m.width <= m.cfg.UI.MobileColumns
}

// =============================================================================
// HELPERS
// =============================================================================

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
