// Package pipeline implements the Markdown-to-speech text pipeline.
//
// Stages, applied in order by the root md2speech package:
//   - Markdown preprocessing (line ending normalization)
//   - Markdown to HTML conversion via Goldmark, with an optional
//     code-block policy applied to the parsed tree
//   - Tag stripping and whitespace collapsing
//   - Speech optimization (abbreviations, numbers, symbols)
//   - Output formatting (plain text or an SSML envelope)
//
// Every stage is a function of its input text only. File I/O and logging
// live in the root package so the stages stay pure and easy to test.
package pipeline
