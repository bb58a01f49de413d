// quorum-guide - Terminal assistant widget for the Quorum governance portal.
//
// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quorumhq/guide-tui/internal/actions"
	"github.com/quorumhq/guide-tui/internal/config"
	"github.com/quorumhq/guide-tui/internal/guide"
	"github.com/quorumhq/guide-tui/internal/portal"
	"github.com/quorumhq/guide-tui/internal/state"
	"github.com/quorumhq/guide-tui/internal/ui/styles"
	"github.com/quorumhq/guide-tui/internal/ui/widget"
)

// =============================================================================
// HOST MESSAGES
// =============================================================================

// navigateMsg switches the demo portal to another page. An empty page
// cycles forward, matching what a real portal router would treat as "next".
type navigateMsg struct {
	Page string
}

// hostNoticeMsg puts a line in the host status bar.
type hostNoticeMsg struct {
	Text string
}

// configReloadedMsg delivers a freshly reloaded configuration.
type configReloadedMsg struct {
	cfg *config.Config
}

// =============================================================================
// HOST MODEL
// =============================================================================

// demoPages are the portal pages the demo host can show. Every page gets
// the same embedded widget; only the page context changes.
var demoPages = []string{"meetings", "tasks", "budget", "resources"}

// hostModel is the demo governance portal that embeds the guide widget.
type hostModel struct {
	cfg    *config.Config
	theme  *styles.Theme
	widget widget.Model

	pages   []string
	pageIdx int

	width  int
	height int
	notice string
}

func newHostModel(cfg *config.Config, theme *styles.Theme, store *guide.Store, client *portal.Client, registry *actions.Registry, dismissals *state.DismissalStore) *hostModel {
	w := widget.New(cfg, theme, store, client, registry, dismissals)
	return &hostModel{
		cfg:    cfg,
		theme:  theme,
		widget: w,
		pages:  demoPages,
	}
}

// Init implements tea.Model.
func (m *hostModel) Init() tea.Cmd {
	return tea.Batch(
		m.widget.Init(),
		m.widget.SetPage(m.pages[m.pageIdx]),
	)
}

// Update implements tea.Model.
func (m *hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			return m, m.switchPage((m.pageIdx + 1) % len(m.pages))
		}

	case navigateMsg:
		if msg.Page == "" {
			return m, m.switchPage((m.pageIdx + 1) % len(m.pages))
		}
		for i, p := range m.pages {
			if p == msg.Page {
				return m, m.switchPage(i)
			}
		}
		m.notice = fmt.Sprintf("No such page %q", msg.Page)
		return m, nil

	case hostNoticeMsg:
		m.notice = msg.Text
		return m, nil

	case configReloadedMsg:
		m.cfg = msg.cfg
		styles.ApplyThemeMode(msg.cfg.UI.Theme)
		m.widget.SetConfig(msg.cfg)
		m.notice = "Configuration reloaded"
		return m, nil
	}

	var cmd tea.Cmd
	m.widget, cmd = m.widget.Update(msg)
	return m, cmd
}

// switchPage moves the portal to another page and refreshes the widget's
// page-scoped feeds.
func (m *hostModel) switchPage(idx int) tea.Cmd {
	m.pageIdx = idx
	m.notice = ""
	return m.widget.SetPage(m.pages[idx])
}

// =============================================================================
// VIEW
// =============================================================================

var (
	hostTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Indigo)
	hostTabStyle   = lipgloss.NewStyle().Foreground(styles.TextMuted).Padding(0, 1)
	hostTabActive  = lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true).
			Padding(0, 1).Underline(true)
	hostBodyStyle   = lipgloss.NewStyle().Foreground(styles.TextSecondary).Padding(1, 2)
	hostNoticeStyle = lipgloss.NewStyle().Foreground(styles.Amber)
)

// View implements tea.Model.
func (m *hostModel) View() string {
	var b strings.Builder

	b.WriteString(hostTitleStyle.Render("Quorum Portal"))
	b.WriteString("  ")
	for i, p := range m.pages {
		style := hostTabStyle
		if i == m.pageIdx {
			style = hostTabActive
		}
		b.WriteString(style.Render(p))
	}
	b.WriteString("\n")
	b.WriteString(hostBodyStyle.Render(pageBody(m.pages[m.pageIdx])))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(hostNoticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.widget.View())
	b.WriteString("\n")
	b.WriteString(hostTabStyle.Render("C-t switch page  C-k toggle guide  C-c quit"))
	return b.String()
}

// pageBody returns placeholder content for a demo page.
func pageBody(page string) string {
	switch page {
	case "meetings":
		return "Upcoming meetings and minutes awaiting approval."
	case "tasks":
		return "Action items across all committees."
	case "budget":
		return "Budget lines and variance for the current quarter."
	case "resources":
		return "Shared documents, rooms, and equipment."
	default:
		return "Nothing here yet."
	}
}
