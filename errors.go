package md2speech

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
	ErrWriteOutput = errors.New("failed to write output")

	// ErrUnsupportedFormat is only returned by ParseFormat. Conversion falls
	// back to plain text instead.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	ErrMarkupConversion  = errors.New("markup conversion failed")
	ErrInvalidCodeBlocks = errors.New("invalid code block policy")
	ErrInternal          = errors.New("internal error")
)
