// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the guide conversation.
package model

// =============================================================================
// INSIGHT TYPE
// =============================================================================

// InsightType classifies a proactive insight.
type InsightType string

const (
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
	InsightAction  InsightType = "action"
)

// Glyph returns the single-character marker used when rendering the insight.
func (t InsightType) Glyph() string {
	switch t {
	case InsightWarning:
		return "!"
	case InsightAction:
		return ">"
	default:
		return "i"
	}
}

// InsightItem is one proactive, dismissible suggestion shown before any
// conversation starts. Items are generated per page context by the portal
// and replaced wholesale when the active page changes.
type InsightItem struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Count       int         `json:"count,omitempty"`
	ActionQuery string      `json:"action_query,omitempty"`
	ActionLabel string      `json:"action_label,omitempty"`
}

// HasAction reports whether the insight carries a canned follow-up query.
func (i InsightItem) HasAction() bool {
	return i.ActionQuery != ""
}

// =============================================================================
// QUICK-START SUGGESTION
// =============================================================================

// Suggestion is a quick-start chip shown while the conversation is empty.
// Ephemeral and page-scoped; the whole list is regenerated on page change.
type Suggestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
