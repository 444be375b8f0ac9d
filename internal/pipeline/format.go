package pipeline

// Output format names understood by the formatter.
const (
	FormatPlain = "plain"
	FormatSSML  = "ssml"
)

// SSML envelope. The text inside is not escaped.
const (
	ssmlOpen  = "<speak>"
	ssmlClose = "</speak>"
)

// OutputFormatter wraps speech text in an output envelope.
type OutputFormatter interface {
	// Format returns the wrapped text and whether format was recognized.
	// Unrecognized formats return the text unchanged.
	Format(text, format string) (string, bool)
}

// EnvelopeFormatter implements the plain and SSML envelopes.
type EnvelopeFormatter struct{}

// Format implements OutputFormatter.
func (f *EnvelopeFormatter) Format(text, format string) (string, bool) {
	switch format {
	case FormatPlain:
		return text, true
	case FormatSSML:
		return ssmlOpen + text + ssmlClose, true
	default:
		return text, false
	}
}
