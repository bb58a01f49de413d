// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the HTTP client for the Quorum portal's
// assistant API.
package portal

import (
	"github.com/quorumhq/guide-tui/internal/model"
)

// =============================================================================
// ASK
// =============================================================================

// AskRequest is the body of POST /api/assistant/ask.
type AskRequest struct {
	// Query is the user's question, already trimmed by the caller.
	Query string `json:"query"`

	// Page identifies the portal page the widget is mounted on, so the
	// backend can scope its retrieval (e.g. "meetings", "tasks").
	Page string `json:"page,omitempty"`

	// ConversationID threads follow-up turns. Empty on the first turn; the
	// backend echoes back the ID it assigned.
	ConversationID string `json:"conversation_id,omitempty"`
}

// AskResponse is one complete assistant turn.
//
// Sources, DataBasis and Suggestions are all optional; a plain text answer
// with none of them is a valid response.
type AskResponse struct {
	Answer         string                   `json:"answer"`
	ConversationID string                   `json:"conversation_id,omitempty"`
	Sources        []model.Source           `json:"sources,omitempty"`
	DataBasis      *model.DataBasis         `json:"data_basis,omitempty"`
	Suggestions    []model.ActionSuggestion `json:"suggestions,omitempty"`
}

// =============================================================================
// INSIGHTS AND SUGGESTIONS
// =============================================================================

// InsightsResponse is the body of GET /api/assistant/insights.
type InsightsResponse struct {
	Insights []model.InsightItem `json:"insights"`
}

// SuggestionsResponse is the body of GET /api/assistant/suggestions.
type SuggestionsResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
}

// =============================================================================
// ERRORS ON THE WIRE
// =============================================================================

// apiError is the portal's error envelope for non-2xx responses.
type apiError struct {
	Error string `json:"error"`
}
