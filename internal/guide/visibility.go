// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package guide implements the shared state store behind the assistant
// widget.
//
// This file defines the widget visibility state machine. All transitions
// are explicit and user- or code-triggered; there are no timeouts and no
// terminal state - the widget persists for the lifetime of the session.
package guide

// =============================================================================
// VISIBILITY STATES
// =============================================================================

// Visibility is one of the four widget states. The mobile/desktop
// presentation mode is deliberately not part of this type: the breakpoint
// changes layout only, never state semantics.
type Visibility int

const (
	// VisibilityClosed hides the widget entirely; only the trigger shows.
	VisibilityClosed Visibility = iota
	// VisibilityMinimized collapses the open panel to a pill.
	VisibilityMinimized
	// VisibilityCompact is the default open panel size.
	VisibilityCompact
	// VisibilityExpanded is the enlarged open panel.
	VisibilityExpanded
)

// String returns the state name used in logs and tests.
func (v Visibility) String() string {
	switch v {
	case VisibilityClosed:
		return "closed"
	case VisibilityMinimized:
		return "minimized"
	case VisibilityCompact:
		return "open-compact"
	case VisibilityExpanded:
		return "open-expanded"
	default:
		return "unknown"
	}
}

// IsOpen reports whether the panel body is visible.
func (v Visibility) IsOpen() bool {
	return v == VisibilityCompact || v == VisibilityExpanded
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Toggle flips between closed and open: closed goes to compact, every other
// state goes to closed. Bound to ctrl+k regardless of current state.
func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vis == VisibilityClosed {
		s.vis = VisibilityCompact
		s.wasExpanded = false
		return
	}
	s.vis = VisibilityClosed
}

// Minimize collapses an open panel to the pill, remembering whether it was
// expanded so Expand can restore it. No-op unless open.
func (s *Store) Minimize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.vis.IsOpen() {
		return
	}
	s.wasExpanded = s.vis == VisibilityExpanded
	s.vis = VisibilityMinimized
}

// Expand restores a minimized panel, returning to the size it had before
// it was minimized (default compact). No-op unless minimized.
func (s *Store) Expand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vis != VisibilityMinimized {
		return
	}
	if s.wasExpanded {
		s.vis = VisibilityExpanded
	} else {
		s.vis = VisibilityCompact
	}
}

// ToggleExpanded switches an open panel between compact and expanded.
// No-op if the panel is closed or minimized.
func (s *Store) ToggleExpanded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.vis {
	case VisibilityCompact:
		s.vis = VisibilityExpanded
	case VisibilityExpanded:
		s.vis = VisibilityCompact
	}
}

// Close hides the widget from any state. Escape binds here, so Close must
// stay idempotent when already closed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vis = VisibilityClosed
}

// Visibility returns the current widget state.
func (s *Store) Visibility() Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vis
}
