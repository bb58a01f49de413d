// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the guide assistant widget.
//
// This file defines the Bubble Tea messages the widget exchanges with its
// async commands, and the command constructors that produce them.
package widget

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quorumhq/guide-tui/internal/model"
	"github.com/quorumhq/guide-tui/internal/portal"
)

// =============================================================================
// MESSAGES
// =============================================================================

// assistantReplyMsg carries one completed assistant turn. Gen ties the
// reply to the send that produced it; a reply whose generation no longer
// matches the store is stale and must be dropped.
type assistantReplyMsg struct {
	Gen  uint64
	Resp *portal.AskResponse
}

// sendFailedMsg reports a failed send.
type sendFailedMsg struct {
	Gen uint64
	Err error
}

// insightsMsg delivers the insight feed for a page.
type insightsMsg struct {
	Page     string
	Insights []model.InsightItem
	Err      error
}

// suggestionsMsg delivers the quick-start chips for a page.
type suggestionsMsg struct {
	Page        string
	Suggestions []model.Suggestion
	Err         error
}

// actionFailedMsg reports a dispatch failure so the widget can surface it
// without crashing the host page.
type actionFailedMsg struct {
	Err error
}

// exportDoneMsg reports the outcome of a conversation export.
type exportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// askCmd sends one conversational turn to the portal.
func askCmd(client *portal.Client, timeout time.Duration, gen uint64, query, page string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Ask(ctx, portal.AskRequest{Query: query, Page: page})
		if err != nil {
			return sendFailedMsg{Gen: gen, Err: err}
		}
		return assistantReplyMsg{Gen: gen, Resp: resp}
	}
}

// fetchInsightsCmd loads the insight feed for a page.
func fetchInsightsCmd(client *portal.Client, timeout time.Duration, page string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Insights(ctx, page)
		if err != nil {
			// Soft failure: an empty feed, not an error state.
			return insightsMsg{Page: page, Err: err}
		}
		return insightsMsg{Page: page, Insights: resp.Insights}
	}
}

// fetchSuggestionsCmd loads the quick-start chips for a page.
func fetchSuggestionsCmd(client *portal.Client, timeout time.Duration, page string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Suggestions(ctx, page)
		if err != nil {
			return suggestionsMsg{Page: page, Err: err}
		}
		return suggestionsMsg{Page: page, Suggestions: resp.Suggestions}
	}
}
