// quorum-guide - Terminal assistant widget for the Quorum governance portal.
//
// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quorumhq/guide-tui/internal/actions"
	"github.com/quorumhq/guide-tui/internal/cli"
	"github.com/quorumhq/guide-tui/internal/config"
	"github.com/quorumhq/guide-tui/internal/export"
	"github.com/quorumhq/guide-tui/internal/guide"
	"github.com/quorumhq/guide-tui/internal/model"
	"github.com/quorumhq/guide-tui/internal/portal"
	"github.com/quorumhq/guide-tui/internal/state"
	"github.com/quorumhq/guide-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference so action handlers and the config watcher can
// push messages into the running program.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "ask":
		page, rest := splitPageFlag(args[1:])
		if err := cli.HandleAsk(cfg, page, rest); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "chat":
		page, _ := splitPageFlag(args[1:])
		if err := cli.HandleChat(cfg, page); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("quorum-guide %s (%s, built %s)\n", Version, GitCommit, BuildDate)
	case "help", "-h", "--help":
		printUsage()
	default:
		runTUI(cfg)
	}
}

func printUsage() {
	fmt.Println(`quorum-guide - assistant widget for the Quorum governance portal

Usage:
  quorum-guide              start the demo portal with the embedded widget
  quorum-guide ask [q]      ask a single question (reads stdin when piped)
  quorum-guide chat         readline REPL against the portal
  quorum-guide version      print version

Flags for ask/chat:
  --page NAME               page context for the question (default "home")`)
}

// splitPageFlag extracts --page NAME from the argument list.
func splitPageFlag(args []string) (page string, rest []string) {
	page = "home"
	for i := 0; i < len(args); i++ {
		if args[i] == "--page" && i+1 < len(args) {
			page = args[i+1]
			i++
			continue
		}
		if v, ok := strings.CutPrefix(args[i], "--page="); ok {
			page = v
			continue
		}
		rest = append(rest, args[i])
	}
	return page, rest
}

// =============================================================================
// TUI STARTUP
// =============================================================================

func runTUI(cfg *config.Config) {
	styles.ApplyThemeMode(cfg.UI.Theme)
	theme := styles.NewTheme()
	store := guide.NewStore()
	client := portal.NewClientWithConfig(&portal.ClientConfig{
		BaseURL:    cfg.Portal.BaseURL,
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.Portal.MaxRetries,
		RetryDelay: cfg.RetryDelay(),
	})

	// Dismissal persistence is best-effort; a broken local database only
	// loses dismissals across restarts.
	var dismissals *state.DismissalStore
	if dbPath, err := cfg.DatabasePath(); err == nil {
		if ds, err := state.Open(dbPath); err == nil {
			dismissals = ds
			defer ds.Close()
		} else {
			fmt.Fprintf(os.Stderr, "Warning: dismissal store unavailable: %v\n", err)
		}
	}

	registry := actions.NewRegistry()
	registerHostHandlers(registry, store)

	m := newHostModel(cfg, theme, store, client, registry, dismissals)

	// Live config reload: edits to config.toml restyle the running widget
	// without a restart.
	if path, err := config.ConfigPath(); err == nil {
		if w, err := config.NewWatcher(path, 200*time.Millisecond, func(next *config.Config) {
			sendToProgram(configReloadedMsg{cfg: next})
		}); err == nil {
			if err := w.Watch(); err == nil {
				defer w.Close()
			}
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running quorum-guide: %v\n", err)
		os.Exit(1)
	}
}

// registerHostHandlers wires the widget's typed actions to this host.
// Navigation switches the demo page, export writes the conversation to
// disk, and the remaining types surface a status line because the demo has
// no detail views to open.
func registerHostHandlers(registry *actions.Registry, store *guide.Store) {
	registry.Register(model.ActionNavigate, func(s model.ActionSuggestion) error {
		var payload struct {
			Page string `json:"page"`
		}
		if len(s.Payload) > 0 {
			if err := json.Unmarshal(s.Payload, &payload); err != nil {
				return fmt.Errorf("bad navigate payload: %w", err)
			}
		}
		sendToProgram(navigateMsg{Page: payload.Page})
		return nil
	})

	notify := func(verb string) actions.Handler {
		return func(s model.ActionSuggestion) error {
			sendToProgram(hostNoticeMsg{Text: verb + ": " + s.Label})
			return nil
		}
	}
	registry.Register(model.ActionExport, func(s model.ActionSuggestion) error {
		path, err := exportConversation(store, s, export.DefaultOptions())
		if err != nil {
			return err
		}
		sendToProgram(hostNoticeMsg{Text: "Exported to " + path})
		return nil
	})

	registry.Register(model.ActionShowDetail, notify("Showing detail"))
	registry.Register(model.ActionView, notify("Opening view"))
	registry.Register(model.ActionCreate, notify("Create requested"))
	registry.Register(model.ActionOpenLoop, notify("Open loop"))
}

// exportConversation writes the active conversation to disk. The action
// payload may name a format ("markdown", "json", "html"); markdown is the
// default. The underlying write is atomic, so a crash mid-export never
// leaves a truncated file.
func exportConversation(store *guide.Store, s model.ActionSuggestion, opts *export.Options) (string, error) {
	snapshot := store.Snapshot()
	if snapshot.IsEmpty() {
		return "", fmt.Errorf("nothing to export yet")
	}

	var payload struct {
		Format string `json:"format"`
	}
	if len(s.Payload) > 0 {
		if err := json.Unmarshal(s.Payload, &payload); err != nil {
			return "", fmt.Errorf("bad export payload: %w", err)
		}
	}

	var exporter export.Exporter
	switch strings.ToLower(payload.Format) {
	case "", "markdown", "md":
		exporter = export.NewMarkdownExporter(opts)
	case "json":
		exporter = export.NewJSONExporter(opts)
	case "html":
		exporter = export.NewHTMLExporter(opts)
	default:
		return "", fmt.Errorf("unsupported export format %q", payload.Format)
	}

	return export.ExportToFile(snapshot, exporter, opts)
}
