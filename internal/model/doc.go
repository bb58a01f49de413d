// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the guide conversation.
//
// The central type is Message: one entry in the conversation, carrying the
// optional artifacts an assistant turn may attach (citation Sources, a
// DataBasis provenance summary, and ActionSuggestion commands). Messages are
// immutable once created; Conversation is the append-only container that
// owns them.
//
// InsightItem and Suggestion are the two page-scoped types that live outside
// the conversation: proactive insights shown before any conversation starts,
// and quick-start chips regenerated whenever the active page changes.
//
// Everything here is plain data with no UI or transport dependencies, so the
// same types flow from the portal client through the guide store into the
// widget unchanged.
package model
