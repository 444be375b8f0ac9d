package main

import (
	"errors"

	md2speech "github.com/alnah/go-md2speech"
	"github.com/alnah/go-md2speech/internal/fileutil"
	"github.com/alnah/go-md2speech/internal/hints"
	"github.com/alnah/go-md2speech/internal/logging"
)

// hintFor returns an actionable hint for err, or "".
// Config lookup failures get their hint where the searched paths are known.
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2speech.ErrInvalidUTF8):
		return hints.ForInvalidUTF8()
	case errors.Is(err, fileutil.ErrDecompress):
		return hints.ForCompressedInput()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, md2speech.ErrUnsupportedFormat):
		return hints.ForChoice(md2speech.Formats())
	case errors.Is(err, md2speech.ErrInvalidCodeBlocks):
		return hints.ForChoice(md2speech.CodeBlockPolicies())
	case errors.Is(err, logging.ErrInvalidFormat):
		return hints.ForChoice([]string{logging.FormatAuto, logging.FormatText, logging.FormatJSON})
	case errors.Is(err, ErrUnsupportedShell):
		return hints.ForChoice(supportedShells)
	}
	return ""
}
