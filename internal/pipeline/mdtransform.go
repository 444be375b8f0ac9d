package pipeline

import (
	"context"
	"strings"
)

// lineEndings maps CRLF and lone CR to LF. CRLF is listed first so it wins.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// MarkdownPreprocessor rewrites markdown source before rendering.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// LineNormalizer tidies line structure only. Its output renders to the same
// spoken text as its input, since whitespace is collapsed after stripping.
type LineNormalizer struct{}

// PreprocessMarkdown returns content with LF line endings and no run of more
// than one blank line. A canceled context returns content unchanged.
func (p *LineNormalizer) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return squeezeBlankLines(lineEndings.Replace(content))
}

// squeezeBlankLines cuts every run of three or more newlines down to two.
func squeezeBlankLines(content string) string {
	if !strings.Contains(content, "\n\n\n") {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	run := 0
	for _, r := range content {
		if r == '\n' {
			run++
			if run > 2 {
				continue
			}
		} else {
			run = 0
		}
		b.WriteRune(r)
	}
	return b.String()
}
