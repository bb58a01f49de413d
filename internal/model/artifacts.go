// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the guide conversation.
//
// This file defines the artifact types an assistant turn may attach to a
// message: citation sources, the data-basis provenance summary, and typed
// action suggestions.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// =============================================================================
// SOURCE TYPE
// =============================================================================

// SourceType categorizes what kind of portal record a citation points at.
type SourceType string

const (
	SourceMeeting    SourceType = "meeting"
	SourceTask       SourceType = "task"
	SourceAgent      SourceType = "agent"
	SourceGovernance SourceType = "governance"
	SourceDocs       SourceType = "docs"
	SourcePlatform   SourceType = "platform"
)

// DisplayName returns a human-readable label for the source type.
func (t SourceType) DisplayName() string {
	switch t {
	case SourceMeeting:
		return "Meeting"
	case SourceTask:
		return "Task"
	case SourceAgent:
		return "Agent"
	case SourceGovernance:
		return "Governance"
	case SourceDocs:
		return "Docs"
	case SourcePlatform:
		return "Platform"
	default:
		return string(t)
	}
}

// Source is one citation attached to an assistant message.
// Pure metadata with no lifecycle of its own - it is owned by the Message
// that references it.
type Source struct {
	ID    string     `json:"id"`
	Type  SourceType `json:"type"`
	Title string     `json:"title"`
}

// =============================================================================
// DATA BASIS
// =============================================================================

// DataBasis summarizes how much of an underlying corpus backed an answer.
type DataBasis struct {
	ItemsShown  int      `json:"items_shown"`
	TotalItems  int      `json:"total_items"`
	EntityTypes []string `json:"entity_types,omitempty"`
}

// Valid reports whether the provenance counts are coherent.
// Invariant: 0 <= ItemsShown <= TotalItems.
func (d DataBasis) Valid() bool {
	return d.ItemsShown >= 0 && d.ItemsShown <= d.TotalItems
}

// Clamp returns a copy with ItemsShown forced into [0, TotalItems].
// Rendering uses this so a malformed backend response can never display
// "7 of 3 records".
func (d DataBasis) Clamp() DataBasis {
	if d.ItemsShown < 0 {
		d.ItemsShown = 0
	}
	if d.ItemsShown > d.TotalItems {
		d.ItemsShown = d.TotalItems
	}
	return d
}

// Summary renders the provenance as a single display line,
// e.g. "Based on 3 of 12 records (meetings, tasks)".
func (d DataBasis) Summary() string {
	c := d.Clamp()
	var sb strings.Builder
	sb.WriteString("Based on ")
	sb.WriteString(strconv.Itoa(c.ItemsShown))
	sb.WriteString(" of ")
	sb.WriteString(strconv.Itoa(c.TotalItems))
	sb.WriteString(" records")
	if len(c.EntityTypes) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(c.EntityTypes, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

// =============================================================================
// ACTION SUGGESTIONS
// =============================================================================

// ActionType is the closed enumeration of behaviors an assistant reply can
// suggest. The widget never interprets the payload - it only dispatches by
// type to an externally-owned handler.
type ActionType string

const (
	ActionQuery      ActionType = "query"
	ActionFilter     ActionType = "filter"
	ActionNavigate   ActionType = "navigate"
	ActionShowDetail ActionType = "show_detail"
	ActionView       ActionType = "view"
	ActionExport     ActionType = "export"
	ActionCreate     ActionType = "create"
	ActionOpenLoop   ActionType = "open_loop"
)

// AllActionTypes returns every known action type, in a stable order.
// The dispatch registry uses this to verify handler coverage at startup.
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionQuery,
		ActionFilter,
		ActionNavigate,
		ActionShowDetail,
		ActionView,
		ActionExport,
		ActionCreate,
		ActionOpenLoop,
	}
}

// Known reports whether the action type is part of the closed enumeration.
// Unknown types (a newer backend than this client) must fail closed.
func (t ActionType) Known() bool {
	switch t {
	case ActionQuery, ActionFilter, ActionNavigate, ActionShowDetail,
		ActionView, ActionExport, ActionCreate, ActionOpenLoop:
		return true
	default:
		return false
	}
}

// ActionSuggestion is a polymorphic command value attached to an assistant
// message. Payload is opaque to the widget and passed through unmodified.
type ActionSuggestion struct {
	Type    ActionType      `json:"action_type"`
	Label   string          `json:"label"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
