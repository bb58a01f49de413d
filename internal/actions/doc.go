// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package actions implements the typed action-dispatch protocol between
// assistant replies and the hosting page.
//
// An assistant message may carry ActionSuggestion values; the widget's only
// job is to pick a bounded subset to display (SelectForDisplay) and, on
// activation, hand the untouched suggestion to the Registry. Handlers are
// registered per ActionType by whoever owns the page behavior - the widget
// itself never navigates, filters, exports, or creates anything.
//
// Dispatch fails closed: an unknown action type, a missing handler, or a
// panicking handler all surface as an error instead of taking down the
// globally mounted widget. Registry.Unhandled exists so hosts (and tests)
// can assert full coverage of the closed enumeration at startup - adding a
// new ActionType breaks that assertion until every host handles it.
package actions
