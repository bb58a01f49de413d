// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the guide assistant widget.
//
// The widget is a Bubble Tea component a host page embeds. It owns four
// visibility states (closed, minimized, open compact, open expanded), the
// send/receive protocol against the portal assistant API, the insight feed
// shown before a conversation starts, and the quick-action surface built
// from typed action suggestions. Page behaviors (navigation, filtering,
// exports) are dispatched to handlers the host registers; the widget never
// interprets action payloads itself.
//
// Layout adapts to the terminal: below the configured column breakpoint
// the open panel renders as a full-width sheet instead of an anchored
// panel.
package widget
