// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/quorumhq/guide-tui/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.Page = "tasks"
	conv.AddMessage(model.NewUserMessage("What's overdue this week?"))
	conv.AddMessage(model.NewAssistantMessage(
		"Three tasks are overdue.\n\n```sql\nSELECT * FROM tasks WHERE due < now();\n```",
		[]model.Source{{ID: "t1", Type: model.SourceTask, Title: "Q3 audit"}},
		&model.DataBasis{ItemsShown: 3, TotalItems: 12, EntityTypes: []string{"tasks"}},
		nil,
	))
	return conv
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownExport(t *testing.T) {
	content, err := NewMarkdownExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := string(content)
	for _, want := range []string{
		"title:",
		"page: tasks",
		"generator: quorum-guide",
		"[You]",
		"[Guide]",
		"Task: Q3 audit",
		"Based on 3 of 12 records (tasks)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown export missing %q", want)
		}
	}
}

func TestMarkdownExport_NoTimestamps(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeTimestamps = false

	content, err := NewMarkdownExporter(opts).Export(sampleConversation())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "<sub>1") {
		t.Error("timestamps should be omitted")
	}
}

func TestMarkdownExport_EmptyConversation(t *testing.T) {
	if _, err := NewMarkdownExporter(nil).Export(model.NewConversation()); err == nil {
		t.Error("empty conversation should not export")
	}
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONExport_RoundTrip(t *testing.T) {
	conv := sampleConversation()

	content, err := NewJSONExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded model.Conversation
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if decoded.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", decoded.MessageCount())
	}
	if decoded.Messages[1].DataBasis == nil {
		t.Error("data basis must survive the round trip")
	}
}

// =============================================================================
// HTML
// =============================================================================

func TestHTMLExport(t *testing.T) {
	content, err := NewHTMLExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := string(content)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"class=\"message user\"",
		"class=\"message assistant\"",
		"Task: Q3 audit",
		"Based on 3 of 12 records (tasks)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html export missing %q", want)
		}
	}
	// The fenced SQL must come out highlighted or at worst fenced, never raw.
	if !strings.Contains(out, "SELECT") {
		t.Error("code block content missing")
	}
}

func TestHTMLExport_EscapesContent(t *testing.T) {
	conv := model.NewConversation()
	conv.AddMessage(model.NewUserMessage("<script>alert(1)</script>"))
	conv.AddMessage(model.NewAssistantMessage("ok", nil, nil, nil))

	content, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "<script>alert") {
		t.Error("message content must be escaped")
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

func TestExportToFile(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()

	path, err := ExportMarkdown(sampleConversation(), opts)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if !strings.HasSuffix(path, ".md") {
		t.Errorf("path = %q, want .md suffix", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("exported file unreadable: %v", err)
	}
	if len(data) == 0 {
		t.Error("exported file is empty")
	}
}

// =============================================================================
// FILENAME SANITIZATION
// =============================================================================

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What's overdue?", "What's_overdue-"},
		{"a/b\\c:d", "a-b-c-d"},
		{"", "conversation"},
		{"line\nbreak", "line_break"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
