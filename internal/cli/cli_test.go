// Copyright (c) 2025 Quorum Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the headless command-line surface for the guide.
package cli

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		check    func(t *testing.T, out string)
	}{
		{
			name:     "short line unchanged",
			input:    "hello world",
			maxWidth: 40,
			check: func(t *testing.T, out string) {
				if out != "hello world" {
					t.Errorf("got %q", out)
				}
			},
		},
		{
			name:     "long line wraps at word boundary",
			input:    strings.Repeat("word ", 20),
			maxWidth: 30,
			check: func(t *testing.T, out string) {
				for _, line := range strings.Split(out, "\n") {
					if len(line) > 30 {
						t.Errorf("line %q exceeds width", line)
					}
				}
			},
		},
		{
			name:     "existing newlines preserved",
			input:    "one\ntwo\nthree",
			maxWidth: 40,
			check: func(t *testing.T, out string) {
				if got := len(strings.Split(out, "\n")); got != 3 {
					t.Errorf("got %d lines, want 3", got)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, WrapText(tc.input, tc.maxWidth))
		})
	}
}

func TestRenderMarkdown_FallsBackToWrappedText(t *testing.T) {
	saved := markdownRenderer
	markdownRenderer = nil
	defer func() { markdownRenderer = saved }()

	if got := renderMarkdown("# heading"); got != "# heading" {
		t.Errorf("nil renderer should pass short content through, got %q", got)
	}

	long := strings.Repeat("word ", 60)
	out := renderMarkdown(long)
	if !strings.Contains(out, "\n") {
		t.Error("nil renderer should word-wrap long content")
	}
	width := TerminalWidth()
	for _, line := range strings.Split(out, "\n") {
		if len(line) > width {
			t.Errorf("wrapped line exceeds terminal width %d: %q", width, line)
		}
	}
}
