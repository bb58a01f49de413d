// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/quorumhq/guide-tui/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports conversations to standalone HTML with
// syntax-highlighted code blocks.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a conversation to HTML format.
func (e *HTMLExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if conv.IsEmpty() {
		return nil, fmt.Errorf("conversation has no messages")
	}

	var sb strings.Builder

	title := html.EscapeString(conv.GetTitle())

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", title))
	sb.WriteString("<style>\n")
	sb.WriteString(e.stylesheet())
	sb.WriteString("</style>\n</head>\n<body>\n")

	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", title))

	if e.options.IncludeMetadata {
		sb.WriteString("<div class=\"meta\">\n")
		if conv.Page != "" {
			sb.WriteString(fmt.Sprintf("<span>Page: %s</span>\n", html.EscapeString(conv.Page)))
		}
		sb.WriteString(fmt.Sprintf("<span>Created: %s</span>\n", formatTimestamp(conv.CreatedAt)))
		sb.WriteString(fmt.Sprintf("<span>Messages: %d</span>\n", conv.MessageCount()))
		sb.WriteString("</div>\n")
	}

	for _, msg := range conv.Messages {
		cls := "assistant"
		if msg.Role == model.RoleUser {
			cls = "user"
		}
		sb.WriteString(fmt.Sprintf("<div class=\"message %s\">\n", cls))

		sb.WriteString(fmt.Sprintf("<div class=\"role\">%s", html.EscapeString(msg.Role.DisplayName())))
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf(" <span class=\"ts\">%s</span>", formatShortTimestamp(msg.Timestamp)))
		}
		sb.WriteString("</div>\n")

		sb.WriteString("<div class=\"content\">\n")
		sb.WriteString(e.renderContent(msg.Content))
		sb.WriteString("</div>\n")

		if e.options.IncludeSources {
			e.renderArtifacts(&sb, msg)
		}

		sb.WriteString("</div>\n")
	}

	sb.WriteString(fmt.Sprintf("<div class=\"footer\">Exported from the Quorum guide on %s</div>\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("</body>\n</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// CONTENT RENDERING
// =============================================================================

// renderContent converts message markdown into HTML. Fenced code blocks
// are syntax highlighted; everything else is escaped and paragraph-wrapped.
func (e *HTMLExporter) renderContent(content string) string {
	var sb strings.Builder

	lines := strings.Split(content, "\n")
	var code []string
	var lang string
	inCode := false

	flushCode := func() {
		e.highlightCode(&sb, strings.Join(code, "\n"), lang)
		code = code[:0]
		inCode = false
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inCode {
				flushCode()
			} else {
				lang = strings.TrimPrefix(trimmed, "```")
				inCode = true
			}
			continue
		}

		if inCode {
			code = append(code, line)
			continue
		}

		if trimmed == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(line))
		sb.WriteString("</p>\n")
	}

	// Unterminated fence: emit what we have rather than dropping it.
	if inCode {
		flushCode()
	}

	return sb.String()
}

// highlightCode writes a highlighted code block, falling back to an
// escaped <pre> when the highlighter cannot handle the input.
func (e *HTMLExporter) highlightCode(sb *strings.Builder, code, lang string) {
	style := "github-dark"
	if e.options.Theme == "light" {
		style = "github"
	}

	var buf strings.Builder
	if err := quick.Highlight(&buf, code, lang, "html", style); err != nil {
		sb.WriteString("<pre><code>")
		sb.WriteString(html.EscapeString(code))
		sb.WriteString("</code></pre>\n")
		return
	}
	sb.WriteString(buf.String())
	sb.WriteString("\n")
}

// renderArtifacts writes the sources list and data-basis line.
func (e *HTMLExporter) renderArtifacts(sb *strings.Builder, msg *model.Message) {
	if len(msg.Sources) > 0 {
		sb.WriteString("<ul class=\"sources\">\n")
		for _, src := range msg.Sources {
			sb.WriteString(fmt.Sprintf("<li>%s: %s</li>\n",
				html.EscapeString(src.Type.DisplayName()),
				html.EscapeString(src.Title)))
		}
		sb.WriteString("</ul>\n")
	}
	if msg.DataBasis != nil {
		sb.WriteString(fmt.Sprintf("<div class=\"basis\">%s</div>\n",
			html.EscapeString(msg.DataBasis.Summary())))
	}
}

// =============================================================================
// STYLESHEET
// =============================================================================

func (e *HTMLExporter) stylesheet() string {
	bg, fg, userBg, assistantBg, muted := "#1a1b26", "#c0caf5", "#283457", "#1f2335", "#565f89"
	if e.options.Theme == "light" {
		bg, fg, userBg, assistantBg, muted = "#ffffff", "#24292f", "#ddf4ff", "#f6f8fa", "#57606a"
	}

	return fmt.Sprintf(`
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 48rem;
       margin: 2rem auto; padding: 0 1rem; background: %s; color: %s; }
h1 { font-size: 1.4rem; }
.meta { display: flex; gap: 1.5rem; color: %s; font-size: 0.85rem; margin-bottom: 1.5rem; }
.message { border-radius: 8px; padding: 0.75rem 1rem; margin-bottom: 1rem; }
.message.user { background: %s; }
.message.assistant { background: %s; }
.role { font-weight: 600; margin-bottom: 0.5rem; }
.role .ts { font-weight: 400; color: %s; font-size: 0.8rem; }
.content p { margin: 0.4rem 0; }
.sources { color: %s; font-size: 0.85rem; margin: 0.5rem 0 0; }
.basis { color: %s; font-size: 0.8rem; margin-top: 0.5rem; font-style: italic; }
.footer { color: %s; font-size: 0.8rem; margin-top: 2rem; text-align: center; }
pre { overflow-x: auto; padding: 0.6rem; border-radius: 6px; }
`, bg, fg, muted, userBg, assistantBg, muted, muted, muted, muted)
}
