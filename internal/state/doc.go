// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state persists the widget's small amount of local state.
//
// Today that is one concern: which insights the user has dismissed, keyed
// by page. Dismissals survive restarts so a dismissed insight stays gone;
// they are stored in a local SQLite database rather than sent to the
// portal, because a dismissal is a personal preference, not shared data.
package state
