// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the headless command-line surface for the guide.
//
// ask.go handles the "guide ask" command: one question in, one answer out.
//
// Examples:
//   guide ask "what is overdue on the tasks page?"
//   guide ask --page budget "largest variance this quarter"
//   echo "who owns the Q3 review?" | guide ask
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/quorumhq/guide-tui/internal/config"
	"github.com/quorumhq/guide-tui/internal/portal"
	"github.com/quorumhq/guide-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, falling back to
// plain word-wrapped text when rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return WrapText(content, TerminalWidth())
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return WrapText(content, TerminalWidth())
	}
	return rendered
}

// displayAnswer prints an answer, rendered as markdown only on a TTY so
// piped output stays plain.
func displayAnswer(answer string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Println(answer)
	}
}

// =============================================================================
// STYLES
// =============================================================================

var (
	errorStyle  = lipgloss.NewStyle().Foreground(styles.Rose)
	mutedStyle  = lipgloss.NewStyle().Foreground(styles.TextMuted)
	badgeStyle  = lipgloss.NewStyle().Foreground(styles.Teal)
	promptStyle = lipgloss.NewStyle().Foreground(styles.Indigo).Bold(true)
)

// =============================================================================
// ASK HANDLER
// =============================================================================

// newPortalClient builds a portal client from the loaded configuration.
func newPortalClient(cfg *config.Config) *portal.Client {
	return portal.NewClientWithConfig(&portal.ClientConfig{
		BaseURL:    cfg.Portal.BaseURL,
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.Portal.MaxRetries,
		RetryDelay: cfg.RetryDelay(),
	})
}

// HandleAsk handles "guide ask". The question comes from the positional
// arguments, or from stdin when piped.
func HandleAsk(cfg *config.Config, page string, args []string) error {
	ApplyColorSettings()
	styles.ApplyThemeMode(cfg.UI.Theme)

	question := strings.TrimSpace(strings.Join(args, " "))

	if question == "" {
		if stat, _ := os.Stdin.Stat(); (stat.Mode() & os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(bufio.NewReader(os.Stdin))
			if err == nil {
				question = strings.TrimSpace(string(data))
			}
		}
	}
	if question == "" {
		return fmt.Errorf("no question provided. Usage: guide ask \"your question\"")
	}

	client := newPortalClient(cfg)
	ctx := context.Background()

	resp, err := client.Ask(ctx, portal.AskRequest{Query: question, Page: page})
	if err != nil {
		return describeAskError(err)
	}

	displayAnswer(resp.Answer)
	printArtifacts(resp)
	return nil
}

// printArtifacts prints the source badges and data basis under an answer,
// on stderr so they never contaminate piped answers.
func printArtifacts(resp *portal.AskResponse) {
	if len(resp.Sources) > 0 {
		titles := make([]string, 0, len(resp.Sources))
		for _, s := range resp.Sources {
			titles = append(titles, s.Title)
		}
		fmt.Fprintf(os.Stderr, "%s %s\n",
			badgeStyle.Render("Sources:"), strings.Join(titles, ", "))
	}
	if resp.DataBasis != nil {
		fmt.Fprintln(os.Stderr, mutedStyle.Render(resp.DataBasis.Summary()))
	}
}

// describeAskError maps client failures to actionable messages.
func describeAskError(err error) error {
	switch {
	case portal.IsUnreachable(err):
		return fmt.Errorf("portal is not reachable. Is the governance portal running?")
	case portal.IsTimeout(err):
		return fmt.Errorf("the portal took too long to answer; try again")
	case portal.IsRateLimited(err):
		return fmt.Errorf("too many requests; wait a moment and retry")
	default:
		return err
	}
}
