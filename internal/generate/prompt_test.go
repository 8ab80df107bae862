// Copyright Electionwire Media, 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildPrompt_IncludesPolicyAndIndex(t *testing.T) {
	titles := []string{"Maya Gurung Profile", "Ram Sharma Profile"}
	candidates := []string{"Maya Gurung", "Ram Sharma"}

	prompt, err := BuildPrompt("Nepal Election 2026", "2026-03-05", titles, candidates, 8, 85)
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}

	for _, want := range []string{
		"Nepal Election 2026",
		"2026-03-05",
		"at least 8 unique websites",
		"at least 85",
		"- Maya Gurung Profile",
		"- Ram Sharma",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_EmptyIndex(t *testing.T) {
	prompt, err := BuildPrompt("Nepal Election 2026", "2026-03-05", nil, nil, 8, 85)
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}
	if strings.Count(prompt, "- (none)") != 2 {
		t.Errorf("expected (none) placeholders for both empty lists:\n%s", prompt)
	}
}

func TestBuildPrompt_CapsEntries(t *testing.T) {
	titles := make([]string, maxPromptEntries+50)
	for i := range titles {
		titles[i] = fmt.Sprintf("Candidate %d Profile", i)
	}

	prompt, err := BuildPrompt("Nepal Election 2026", "2026-03-05", titles, nil, 8, 85)
	if err != nil {
		t.Fatalf("BuildPrompt returned error: %v", err)
	}
	if strings.Contains(prompt, fmt.Sprintf("Candidate %d Profile", maxPromptEntries)) {
		t.Error("prompt includes entries beyond the cap")
	}
	if !strings.Contains(prompt, fmt.Sprintf("Candidate %d Profile", maxPromptEntries-1)) {
		t.Error("prompt missing the last in-cap entry")
	}
}

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"html passes through", "<h2>Background</h2><p>Body.</p>", "<h2>Background</h2><p>Body.</p>"},
		{"fenced html unwrapped", "```html\n<h2>Background</h2>\n```", "<h2>Background</h2>"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeContent(tt.in); got != tt.want {
				t.Errorf("NormalizeContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeContent_RendersMarkdown(t *testing.T) {
	got := NormalizeContent("## Background\n\nSome profile text.")
	if !strings.Contains(got, "<h2") || !strings.Contains(got, "<p>") {
		t.Errorf("NormalizeContent did not render markdown: %q", got)
	}
}
