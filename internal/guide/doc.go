// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package guide implements the shared state store behind the assistant
// widget.
//
// Store is the single writer for everything the widget displays: the
// conversation, the loading and error flags, quick-start suggestions,
// the insights feed, and the widget visibility state machine. UI layers
// (the Bubble Tea widget and the plain-terminal ask REPL) are read-only
// consumers that drive the store through its operations.
//
// The send protocol is split into BeginSend / FinishSend / FailSend so the
// asynchronous half can live wherever the caller's event loop wants it:
// BeginSend appends the user message synchronously and arms the loading
// gate; the caller then performs the network round-trip and reports back.
// A generation counter ties the two halves together - ClearConversation
// bumps it, so a response that lands after the user emptied the
// conversation is dropped instead of resurrecting a dead turn.
//
// Store is safe for concurrent use. Create one per application root and
// pass it down; tests instantiate fresh stores freely.
package guide
