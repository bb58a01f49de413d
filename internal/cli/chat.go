// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the headless command-line surface for the guide.
//
// chat.go handles the "guide chat" command: a readline-style REPL against
// the portal assistant with input history, for terminals that cannot host
// the full-screen widget.
//
// Slash commands:
//   /page NAME   switch the page context
//   /insights    show the insight feed for the current page
//   /clear       discard the conversation
//   /export      write the conversation to a markdown file
//   /help        list commands
//   /quit        exit
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/quorumhq/guide-tui/internal/config"
	"github.com/quorumhq/guide-tui/internal/export"
	"github.com/quorumhq/guide-tui/internal/guide"
	"github.com/quorumhq/guide-tui/internal/model"
	"github.com/quorumhq/guide-tui/internal/portal"
	"github.com/quorumhq/guide-tui/internal/ui/styles"
	"github.com/quorumhq/guide-tui/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader wraps liner with persistent history.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader() *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &lineReader{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *lineReader) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// close saves history with owner-only permissions and releases the
// terminal.
func (r *lineReader) close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession holds the REPL state. The conversation store is the same
// one the widget uses, so clearing, exporting, and the empty-conversation
// insight feed behave identically across surfaces.
type chatSession struct {
	cfg    *config.Config
	store  *guide.Store
	client *portal.Client
	reader *lineReader
}

// HandleChat runs the interactive REPL.
func HandleChat(cfg *config.Config, page string) error {
	if !IsTTY() {
		return fmt.Errorf("stdin is not a terminal; use \"guide ask\" for piped input")
	}
	ApplyColorSettings()
	styles.ApplyThemeMode(cfg.UI.Theme)

	s := &chatSession{
		cfg:    cfg,
		store:  guide.NewStore(),
		client: newPortalClient(cfg),
		reader: newLineReader(),
	}
	defer s.reader.close()

	if page == "" {
		page = "home"
	}
	s.store.SetPage(page)

	ctx := context.Background()
	if err := s.client.CheckReachable(ctx); err != nil {
		return fmt.Errorf("portal is not reachable at %s", cfg.Portal.BaseURL)
	}

	fmt.Printf("Guide chat on page %q. Type /help for commands.\n\n", page)
	s.showInsights(ctx)

	for {
		input, err := s.reader.read(promptStyle.Render("guide> "))
		if err != nil {
			// Ctrl+C or Ctrl+D both end the session.
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			keepGoing, err := s.handleSlash(ctx, input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[X]"), err)
			}
			if !keepGoing {
				return nil
			}
			continue
		}

		if err := s.sendTurn(ctx, input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[X]"), describeAskError(err))
		}
	}
}

// =============================================================================
// TURN HANDLING
// =============================================================================

// sendTurn runs one question/answer round trip through the store so the
// in-flight gate and generation bookkeeping match the widget.
func (s *chatSession) sendTurn(ctx context.Context, text string) error {
	_, gen, ok := s.store.BeginSend(text)
	if !ok {
		return nil
	}

	resp, err := s.client.Ask(ctx, portal.AskRequest{
		Query: text,
		Page:  s.store.Page(),
	})
	if err != nil {
		s.store.FailSend(gen, err)
		return err
	}

	reply := model.NewAssistantMessage(resp.Answer, resp.Sources, resp.DataBasis, resp.Suggestions)
	s.store.FinishSend(gen, reply)

	displayAnswer(resp.Answer)
	printArtifacts(resp)
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlash runs one slash command. It returns false when the session
// should end.
func (s *chatSession) handleSlash(ctx context.Context, input string) (bool, error) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/quit", "/exit":
		return false, nil

	case "/help":
		fmt.Println("Commands: /page NAME, /insights, /clear, /export, /help, /quit")
		return true, nil

	case "/page":
		if len(fields) < 2 {
			return true, fmt.Errorf("usage: /page NAME")
		}
		s.store.SetPage(fields[1])
		fmt.Printf("Switched to page %q.\n", fields[1])
		s.showInsights(ctx)
		return true, nil

	case "/insights":
		s.showInsights(ctx)
		return true, nil

	case "/clear":
		s.store.ClearConversation()
		fmt.Println("Conversation cleared.")
		return true, nil

	case "/export":
		snapshot := s.store.Snapshot()
		if snapshot.IsEmpty() {
			return true, fmt.Errorf("nothing to export yet")
		}
		opts := export.DefaultOptions()
		path, err := export.ExportToFile(snapshot, export.NewMarkdownExporter(opts), opts)
		if err != nil {
			return true, err
		}
		fmt.Printf("Exported to %s\n", path)
		return true, nil

	default:
		return true, fmt.Errorf("unknown command %q, try /help", cmd)
	}
}

// showInsights prints the page's insight feed. Feed failures are soft; a
// portal hiccup prints nothing rather than breaking the session.
func (s *chatSession) showInsights(ctx context.Context) {
	resp, err := s.client.Insights(ctx, s.store.Page())
	if err != nil || len(resp.Insights) == 0 {
		return
	}

	width := TerminalWidth()
	fmt.Println(mutedStyle.Render("Insights for this page:"))
	for _, in := range resp.Insights {
		line := "  - " + util.TruncateWidth(in.Title, width-10)
		if in.Count > 0 {
			line += fmt.Sprintf(" (%d)", in.Count)
		}
		fmt.Println(line)
		if in.Description != "" {
			fmt.Println(mutedStyle.Render("    " + util.TruncateRunes(in.Description, 160)))
		}
	}
	fmt.Println()
}
