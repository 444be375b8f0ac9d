package md2speech

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-md2speech/internal/pipeline"
)

// Format names the output envelope.
type Format string

// Output formats.
const (
	FormatPlain Format = pipeline.FormatPlain
	FormatSSML  Format = pipeline.FormatSSML
)

// Output file extensions per format.
const (
	ExtPlain = ".txt"
	ExtSSML  = ".ssml"
)

// Formats lists the supported format names.
func Formats() []string {
	return []string{string(FormatPlain), string(FormatSSML)}
}

// ParseFormat validates a format name, case-insensitively. Empty means plain.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPlain, nil
	case FormatPlain, FormatSSML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (must be plain or ssml)", ErrUnsupportedFormat, s)
}

// Extension returns the file extension used for outputs in this format.
func (f Format) Extension() string {
	if f == FormatSSML {
		return ExtSSML
	}
	return ExtPlain
}

// Code-block policies accepted by WithCodeBlocks.
const (
	CodeBlocksRead     = string(pipeline.CodeBlocksRead)
	CodeBlocksSkip     = string(pipeline.CodeBlocksSkip)
	CodeBlocksAnnounce = string(pipeline.CodeBlocksAnnounce)
)

// CodeBlockPolicies lists the accepted policy names.
func CodeBlockPolicies() []string {
	return []string{CodeBlocksRead, CodeBlocksSkip, CodeBlocksAnnounce}
}

// Input contains the data for one conversion.
type Input struct {
	Markdown string // Markdown source
	Format   Format // Output envelope; empty means plain
}

// ConvertResult holds every stage of one conversion.
type ConvertResult struct {
	HTML   string // Rendered markup, for debugging
	Plain  string // Markup removed, whitespace collapsed
	Speech string // Plain after abbreviation, number, and symbol rules
	Text   string // Speech in its output envelope
	Format Format // Format actually applied, after fallback
}

// FileResult describes one written output file.
type FileResult struct {
	InputPath  string
	OutputPath string
	HTMLPath   string // Set when WithDebugHTML is enabled
	Digest     string // BLAKE3-256 of the output, hex encoded
	Unchanged  bool   // Output already held identical content; nothing was written
	Bytes      int
}

// Abbreviation is an extra literal replacement applied after the built-in table.
type Abbreviation struct {
	From string
	To   string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings collected from options.
type converterConfig struct {
	codeBlocks    string
	abbreviations []Abbreviation
	debugHTML     bool
}

// WithLogger sets the logger for warnings and ConvertFile records.
// Panics if logger is nil.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("md2speech: WithLogger logger must not be nil")
	}
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithCodeBlocks sets how code blocks are spoken: "read", "skip", or "announce".
// Invalid names make NewConverter fail with ErrInvalidCodeBlocks.
func WithCodeBlocks(policy string) Option {
	return func(c *Converter) {
		c.cfg.codeBlocks = policy
	}
}

// WithAbbreviations appends rules applied after the built-in abbreviation table.
func WithAbbreviations(abbrs ...Abbreviation) Option {
	return func(c *Converter) {
		c.cfg.abbreviations = append(c.cfg.abbreviations, abbrs...)
	}
}

// WithDebugHTML makes ConvertFile also write the intermediate HTML next to
// the output, as <output>.html.
func WithDebugHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.debugHTML = enabled
	}
}
