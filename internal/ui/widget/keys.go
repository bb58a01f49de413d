// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the guide assistant widget.
//
// This file defines the keyboard bindings for the widget. Bindings are
// grouped by the visibility state they apply to; the update loop consults
// the state before matching.
package widget

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the widget.
type KeyMap struct {
	// Visibility
	Toggle   key.Binding
	Close    key.Binding
	Minimize key.Binding
	Expand   key.Binding

	// Conversation
	Submit  key.Binding
	NewLine key.Binding
	Clear   key.Binding
	Export  key.Binding

	// Focus and navigation
	FocusNext key.Binding
	FocusPrev key.Binding
	Activate  key.Binding
	Dismiss   key.Binding
	Up        key.Binding
	Down      key.Binding
}

// DefaultKeyMap returns the default key bindings for the widget.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "toggle guide"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "minimize"),
		),
		Expand: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "expand/shrink"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		NewLine: key.NewBinding(
			// shift+enter where the terminal can report it, alt+enter as
			// the portable fallback.
			key.WithKeys("shift+enter", "alt+enter"),
			key.WithHelp("M-Enter", "new line"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear conversation"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "export"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next control"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous control"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "activate"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss insight"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("Up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("Down", "scroll down"),
		),
	}
}

// ShortHelp returns the bindings shown in the panel footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.FocusNext, k.Expand, k.Close}
}

// FullHelp returns all bindings, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Close, k.Minimize, k.Expand},
		{k.Submit, k.NewLine, k.Clear, k.Export},
		{k.FocusNext, k.FocusPrev, k.Activate, k.Dismiss},
		{k.Up, k.Down},
	}
}
