// Package md2speech converts Markdown documents to text for speech synthesis.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2speech.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2speech.Input{
//	    Markdown: "# Hello\n\nThis is **Dr. Smith**.",
//	    Format:   md2speech.FormatSSML,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text) // <speak>Hello This is Doctor Smith.</speak>
//
// The result also carries every intermediate stage (HTML, Plain, Speech)
// for debugging.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Loading (LoadDocument: UTF-8 check, transparent .xz decompression)
//  2. Markdown to HTML via Goldmark (GFM, footnotes), then tag stripping
//     and whitespace collapsing
//  3. Speech optimization: abbreviations, then integers below 100 spelled
//     out, then &, %, and $ replaced by words
//  4. Output formatting: plain text or a single <speak> SSML element
//  5. Writing (WriteOutput: atomic replace, unchanged outputs skipped)
//
// ConvertFile runs all five stages and logs the outcome through the
// converter's slog.Logger.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2speech.NewConverter(
//	    md2speech.WithLogger(logger),
//	    md2speech.WithCodeBlocks(md2speech.CodeBlocksAnnounce),
//	    md2speech.WithAbbreviations(md2speech.Abbreviation{From: "approx.", To: "approximately"}),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool, err := md2speech.NewConverterPool(md2speech.ResolvePoolSize(0))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	_, err = conv.ConvertFile(ctx, "in.md", "out.txt", md2speech.FormatPlain)
//
// # Error Handling
//
// Errors wrap sentinels such as ErrReadInput, ErrInvalidUTF8, and
// ErrWriteOutput; use errors.Is to test for them.
package md2speech
