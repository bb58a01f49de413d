// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// guide widget.
//
// Configuration is TOML, loaded from ~/.quorum-guide/config.toml with
// built-in defaults and QUORUM_GUIDE_* environment variable overrides
// applied on top. A file watcher can reload the config live so portal
// operators can repoint the widget without restarting it.
package config
