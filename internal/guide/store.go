// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package guide implements the shared state store behind the assistant
// widget.
package guide

import (
	"strings"
	"sync"

	"github.com/quorumhq/guide-tui/internal/model"
)

// =============================================================================
// STORE
// =============================================================================

// Store owns all conversation and widget state. Single writer: components
// read snapshots, only the operations below mutate.
type Store struct {
	mu sync.Mutex

	// Conversation state
	conv       *model.Conversation
	loading    bool
	errMsg     string
	generation uint64 // bumped by ClearConversation; stale sends are dropped

	// Page-scoped state
	suggestions     []model.Suggestion
	insights        []model.InsightItem
	insightsLoading bool

	// Widget visibility (transitions live in visibility.go)
	vis         Visibility
	wasExpanded bool
}

// NewStore creates a store with an empty conversation and the widget closed.
func NewStore() *Store {
	return &Store{
		conv: model.NewConversation(),
	}
}

// =============================================================================
// SEND PROTOCOL
// =============================================================================

// BeginSend starts a send. It rejects (no-op, ok=false) when the trimmed
// text is empty or another send is in flight - the store is the authority on
// the at-most-one-outstanding-request rule; input controls disabling
// themselves is only a second line of defense.
//
// On acceptance the user message is appended synchronously (so the UI never
// loses what was typed, even if the request later fails), loading is set,
// and any prior error is cleared. The returned generation must be passed to
// FinishSend or FailSend.
func (s *Store) BeginSend(text string) (msg *model.Message, gen uint64, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return nil, 0, false
	}

	msg = model.NewUserMessage(trimmed)
	s.conv.AddMessage(msg)
	s.loading = true
	s.errMsg = ""
	return msg, s.generation, true
}

// FinishSend completes a send with the assistant's reply. Returns false and
// appends nothing when gen is stale - the conversation was cleared while the
// request was in flight and the reply would resurrect a dead turn. Loading
// is cleared either way.
func (s *Store) FinishSend(gen uint64, msg *model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if gen != s.generation || msg == nil {
		return false
	}
	s.conv.AddMessage(msg)
	return true
}

// FailSend records a send failure. The user's message stays in place so the
// conversation remains intact for a retry; no placeholder assistant message
// is appended. A stale generation still clears loading but sets no error.
func (s *Store) FailSend(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if gen != s.generation || err == nil {
		return
	}
	s.errMsg = "The assistant could not answer: " + err.Error()
}

// IsLoading reports whether a send is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// =============================================================================
// CONVERSATION ACCESS
// =============================================================================

// ClearConversation empties the message list and resets the error. Widget
// visibility is untouched. The generation bump drops any in-flight reply.
func (s *Store) ClearConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.ClearHistory()
	s.errMsg = ""
	s.generation++
}

// Messages returns the current history. The slice header is a snapshot;
// callers must not mutate the messages.
func (s *Store) Messages() []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Message, len(s.conv.Messages))
	copy(out, s.conv.Messages)
	return out
}

// MessageCount returns the number of messages.
func (s *Store) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.MessageCount()
}

// Snapshot returns a deep copy of the conversation, for export.
func (s *Store) Snapshot() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Clone()
}

// SetPage records the active page context on the conversation.
func (s *Store) SetPage(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Page = page
}

// Page returns the active page context.
func (s *Store) Page() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Page
}

// =============================================================================
// ERROR STATE
// =============================================================================

// Error returns the current user-displayable error, or "".
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// DismissError clears the error only.
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// =============================================================================
// SUGGESTIONS AND INSIGHTS
// =============================================================================

// SetSuggestions replaces the quick-start chips wholesale (page change).
func (s *Store) SetSuggestions(items []model.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = items
}

// Suggestions returns the current quick-start chips.
func (s *Store) Suggestions() []model.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Suggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// SetInsights replaces the insights feed wholesale (page change) and ends
// the loading state.
func (s *Store) SetInsights(items []model.InsightItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights = items
	s.insightsLoading = false
}

// Insights returns the current insight items.
func (s *Store) Insights() []model.InsightItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InsightItem, len(s.insights))
	copy(out, s.insights)
	return out
}

// SetInsightsLoading marks the feed as loading (spinner instead of list).
func (s *Store) SetInsightsLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insightsLoading = loading
}

// InsightsLoading reports whether the insight fetch is in flight.
func (s *Store) InsightsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insightsLoading
}

// DismissInsight removes exactly the item with the given id, preserving the
// order of the rest. Returns false if no such item exists.
func (s *Store) DismissInsight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.insights {
		if item.ID == id {
			s.insights = append(s.insights[:i], s.insights[i+1:]...)
			return true
		}
	}
	return false
}

// InsightByID looks up an insight item, for running its canned action.
func (s *Store) InsightByID(id string) (model.InsightItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.insights {
		if item.ID == id {
			return item, true
		}
	}
	return model.InsightItem{}, false
}

// ShowInsights reports whether the insights feed should be displayed.
// Derived, never stored: insights show exactly while the conversation is
// empty, so the two can never drift apart.
func (s *Store) ShowInsights() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.IsEmpty()
}
