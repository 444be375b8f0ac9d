package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps command-line parsing failures.
var ErrInvalidFlags = errors.New("invalid arguments")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// speechFlags holds text rewriting flags.
type speechFlags struct {
	format     string
	codeBlocks string
}

// logFlags holds diagnostic output flags.
type logFlags struct {
	format string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	html    bool
	speech  speechFlags
	log     logFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addSpeechFlags adds text rewriting flags to a FlagSet.
func addSpeechFlags(fs *flag.FlagSet, f *speechFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "output format: plain, ssml")
	fs.StringVar(&f.codeBlocks, "code-blocks", "", "code blocks: read, skip, announce")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.format, "log-format", "", "log format: auto, text, json")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file (single input) or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "write the intermediate HTML beside each output")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addSpeechFlags(fs, &f.speech)
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printConvertUsage(usage) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to w on error or --help.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f, w)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	return f, fs.Args(), nil
}
