package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ErrInvalidCodeBlockPolicy indicates an unknown code-block policy name.
var ErrInvalidCodeBlockPolicy = errors.New("invalid code block policy")

// CodeBlockPolicy decides how fenced and indented code blocks are spoken.
type CodeBlockPolicy string

// Code-block policies.
const (
	CodeBlocksRead     CodeBlockPolicy = "read"     // keep code text
	CodeBlocksSkip     CodeBlockPolicy = "skip"     // drop code blocks
	CodeBlocksAnnounce CodeBlockPolicy = "announce" // replace with "<Language> code block."
)

// genericAnnouncement is used when the language is missing or unknown.
const genericAnnouncement = "Code block."

// ParseCodeBlockPolicy validates a policy name. Empty means CodeBlocksRead.
func ParseCodeBlockPolicy(s string) (CodeBlockPolicy, error) {
	switch CodeBlockPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CodeBlocksRead:
		return CodeBlocksRead, nil
	case CodeBlocksSkip:
		return CodeBlocksSkip, nil
	case CodeBlocksAnnounce:
		return CodeBlocksAnnounce, nil
	}
	return "", fmt.Errorf("%w: %q (must be read, skip, or announce)", ErrInvalidCodeBlockPolicy, s)
}

// codeBlockTransformer rewrites code blocks in the parsed document.
type codeBlockTransformer struct {
	policy CodeBlockPolicy
}

// Transform implements parser.ASTTransformer.
func (t *codeBlockTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	// Collect first: mutating the tree while walking it skips siblings.
	var blocks []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			blocks = append(blocks, n)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, block := range blocks {
		parent := block.Parent()
		if parent == nil {
			continue
		}
		switch t.policy {
		case CodeBlocksSkip:
			parent.RemoveChild(parent, block)
		case CodeBlocksAnnounce:
			para := ast.NewParagraph()
			para.AppendChild(para, ast.NewString([]byte(announcement(block, source))))
			parent.ReplaceChild(parent, block, para)
		}
	}
}

// announcement builds the spoken replacement for a code block.
func announcement(block ast.Node, source []byte) string {
	fenced, ok := block.(*ast.FencedCodeBlock)
	if !ok {
		return genericAnnouncement
	}
	name := LanguageName(string(fenced.Language(source)))
	if name == "" {
		return genericAnnouncement
	}
	return name + " code block."
}

// LanguageName returns the display name chroma registers for a fence info
// string such as "go" or "py", or "" when no lexer matches.
func LanguageName(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
