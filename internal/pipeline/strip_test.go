package pipeline

// Notes:
// - StripTags is tested on hand-written HTML and on goldmark output; the
//   latter checks the "no angle brackets survive" property end to end.
// - Entities are intentionally left encoded: decoding &lt; would reintroduce
//   '<' into the plain text.

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestStripTags - Tag removal and whitespace collapsing
// ---------------------------------------------------------------------------

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "heading and paragraph",
			input: "<h1>Hello</h1>\n<p>World</p>\n",
			want:  "Hello World",
		},
		{
			name:  "nested emphasis",
			input: "<p><strong><em>both</em></strong></p>",
			want:  "both",
		},
		{
			name:  "attributes",
			input: `<a href="https://example.com" title="x">link</a>`,
			want:  "link",
		},
		{
			name:  "self closing",
			input: "a<br />b<hr />c",
			want:  "abc",
		},
		{
			name:  "comment",
			input: "x<!-- raw HTML omitted -->y",
			want:  "xy",
		},
		{
			name:  "stray open bracket keeps text",
			input: "a < b <i>c</i>",
			want:  "a < b c",
		},
		{
			name:  "tabs and newlines",
			input: "\t<p>one\n\n\ttwo   three</p>\n\n",
			want:  "one two three",
		},
		{
			name:  "entities untouched",
			input: "<p>AT&amp;T &lt;3</p>",
			want:  "AT&amp;T &lt;3",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: " \n\t ",
			want:  "",
		},
	}

	stripper := &RegexpTagStripper{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := stripper.StripTags(tt.input); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCollapseWhitespace_Idempotent - Collapsing twice equals collapsing once
// ---------------------------------------------------------------------------

func TestCollapseWhitespace_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"a",
		"  leading",
		"trailing  ",
		"a \t\n b",
		"already collapsed text",
		"non breaking space",
	}

	for _, input := range inputs {
		once := CollapseWhitespace(input)
		twice := CollapseWhitespace(once)
		if once != twice {
			t.Errorf("CollapseWhitespace not idempotent for %q: %q then %q", input, once, twice)
		}
		if strings.Contains(once, "  ") || strings.TrimSpace(once) != once {
			t.Errorf("CollapseWhitespace(%q) = %q, has extra spaces", input, once)
		}
	}
}

// ---------------------------------------------------------------------------
// TestStripTags_NoMarkupSurvives - Rendered markdown loses every bracket
// ---------------------------------------------------------------------------

func TestStripTags_NoMarkupSurvives(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Title\n\nSome *emphasis* and **strong** and ***both***.",
		"- one\n- two\n  - nested\n\n1. first\n2. second",
		"[link](https://example.com \"title with > bracket\") and <https://auto.link>",
		"Inline `a < b && c > d` code",
		"```html\n<div class=\"x\">hi</div>\n```",
		"<div>raw block</div>\n\nText <span>inline raw</span> here",
		"a < b > c <unclosed",
		"| a | b |\n|---|---|\n| <x> | y |",
		"~~gone~~ and - [x] task",
		"Text[^1]\n\n[^1]: A note with <em>html</em>.",
		"![alt <text>](img.png)",
		"> quote\n>> nested <q>",
	}

	converter := NewGoldmarkConverter(CodeBlocksRead)
	stripper := &RegexpTagStripper{}

	for _, input := range inputs {
		html, err := converter.ToHTML(context.Background(), input)
		if err != nil {
			t.Fatalf("ToHTML(%q) error: %v", input, err)
		}
		got := stripper.StripTags(html)
		if strings.ContainsAny(got, "<>") {
			t.Errorf("StripTags(ToHTML(%q)) = %q, contains markup characters", input, got)
		}
	}
}
