package pipeline

import (
	"regexp"
	"strings"
)

// tagPattern matches one markup tag. Tag content may not contain '<', so
// "a < b <i>" only loses "<i>".
var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// TagStripper turns rendered HTML into flat plain text.
type TagStripper interface {
	StripTags(html string) string
}

// RegexpTagStripper removes tags with a pattern and collapses whitespace.
type RegexpTagStripper struct{}

// StripTags removes every tag, then collapses whitespace.
// Entities such as &amp; are left as rendered.
func (s *RegexpTagStripper) StripTags(html string) string {
	return CollapseWhitespace(tagPattern.ReplaceAllString(html, ""))
}

// CollapseWhitespace replaces each run of white space with a single space
// and trims both ends. Applying it twice gives the same result as once.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
