// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the HTTP client for the Quorum portal's
// assistant API.
//
// Three endpoints back the widget:
//
//	POST /api/assistant/ask          - one conversational turn
//	GET  /api/assistant/insights     - proactive insights for a page
//	GET  /api/assistant/suggestions  - quick-start chips for a page
//
// Ask responses may carry citation sources, a data-basis provenance
// summary, and action suggestions; all three are optional and callers must
// tolerate their absence. Insight and suggestion failures are soft by
// contract - the widget renders an empty list rather than an error state -
// so those methods still return errors, but callers are expected to
// swallow them.
//
// Errors are classified into an ErrorType taxonomy so the UI can phrase
// failures usefully (portal down vs. timed out vs. said something
// malformed). Transient failures are retried with a fixed delay; requests
// are paced through a rate limiter so a burst of action-suggestion clicks
// cannot stampede the backend.
package portal
