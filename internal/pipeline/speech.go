package pipeline

import (
	"regexp"
	"strings"
)

// Substitution is one literal find-and-replace rule.
type Substitution struct {
	From string
	To   string
}

// builtinAbbreviations is the abbreviation table, in application order.
var builtinAbbreviations = [...]Substitution{
	{From: "e.g.", To: "for example"},
	{From: "i.e.", To: "that is"},
	{From: "etc.", To: "et cetera"},
	{From: "Mr.", To: "Mister"},
	{From: "Mrs.", To: "Missus"},
	{From: "Dr.", To: "Doctor"},
}

// DefaultAbbreviations returns a copy of the built-in abbreviation table.
func DefaultAbbreviations() []Substitution {
	return append([]Substitution(nil), builtinAbbreviations[:]...)
}

// symbols are replaced after numbers, in this order.
var symbols = []Substitution{
	{From: "&", To: "and"},
	{From: "%", To: "percent"},
	{From: "$", To: "dollar"},
}

// wordRun matches a maximal run of Unicode word characters (letters,
// numbers, underscore). A run made only of decimal digits is exactly a digit
// run bounded by word boundaries on both sides. Combining marks are not word
// characters, so "5\u0301" still ends the run after "5".
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// SpeechOptimizer rewrites plain text into a more speakable form.
type SpeechOptimizer interface {
	Optimize(text string) string
}

// TableOptimizer applies abbreviation, number, and symbol rules in that order.
// Rules are plain substring replacements: "Dr." inside "XDr." is replaced too.
type TableOptimizer struct {
	abbreviations []Substitution
}

// NewTableOptimizer creates an optimizer with the built-in abbreviations
// followed by extra, applied in order. Rules with an empty From are ignored.
func NewTableOptimizer(extra ...Substitution) *TableOptimizer {
	abbr := make([]Substitution, 0, len(builtinAbbreviations)+len(extra))
	abbr = append(abbr, builtinAbbreviations[:]...)
	for _, s := range extra {
		if s.From != "" {
			abbr = append(abbr, s)
		}
	}
	return &TableOptimizer{abbreviations: abbr}
}

// Optimize implements SpeechOptimizer.
func (o *TableOptimizer) Optimize(text string) string {
	text = ExpandAbbreviations(text, o.abbreviations)
	text = SpellNumbers(text)
	return ReplaceSymbols(text)
}

// ExpandAbbreviations applies each rule to the whole text before the next.
func ExpandAbbreviations(text string, rules []Substitution) string {
	return applyAll(text, rules)
}

// SpellNumbers replaces each bounded run of decimal digits, in any script,
// with NumberToWords. Runs touching a letter, another kind of number, or
// an underscore are left alone ("5th", "café7", "x_1").
func SpellNumbers(text string) string {
	return wordRun.ReplaceAllStringFunc(text, func(run string) string {
		digits, ok := asciiDigits(run)
		if !ok {
			return run
		}
		return NumberToWords(digits)
	})
}

// ReplaceSymbols substitutes &, %, and $ with their spoken words.
func ReplaceSymbols(text string) string {
	return applyAll(text, symbols)
}

func applyAll(text string, rules []Substitution) string {
	for _, r := range rules {
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	return text
}
