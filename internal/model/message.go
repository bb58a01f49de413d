// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the guide conversation.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Guide"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// A message is immutable once created: the conversation appends, never
// mutates. The three artifact fields are set only on assistant messages and
// are all optional - the portal backend may omit any of them.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Assistant artifacts (created atomically with the message)
	Sources     []Source           `json:"sources,omitempty"`
	DataBasis   *DataBasis         `json:"data_basis,omitempty"`
	Suggestions []ActionSuggestion `json:"suggestions,omitempty"`
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates a new assistant message with its artifacts.
// Any of sources, basis, and suggestions may be nil.
func NewAssistantMessage(content string, sources []Source, basis *DataBasis, suggestions []ActionSuggestion) *Message {
	return &Message{
		ID:          generateID(),
		Role:        RoleAssistant,
		Content:     content,
		Timestamp:   time.Now(),
		Sources:     sources,
		DataBasis:   basis,
		Suggestions: suggestions,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// HasArtifacts returns true if the message carries any assistant artifacts.
func (m *Message) HasArtifacts() bool {
	return len(m.Sources) > 0 || m.DataBasis != nil || len(m.Suggestions) > 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
