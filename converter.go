package md2speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-md2speech/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LineNormalizer)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TagStripper          = (*pipeline.RegexpTagStripper)(nil)
	_ pipeline.SpeechOptimizer      = (*pipeline.TableOptimizer)(nil)
	_ pipeline.OutputFormatter      = (*pipeline.EnvelopeFormatter)(nil)
)

// Converter orchestrates the markdown-to-speech pipeline.
// Create with NewConverter(), then use Convert() or ConvertFile().
// A Converter holds no per-call state and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	logger        *slog.Logger
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	stripper      pipeline.TagStripper
	optimizer     pipeline.SpeechOptimizer
	formatter     pipeline.OutputFormatter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithCodeBlocks).
// Returns ErrInvalidCodeBlocks for an unknown code-block policy.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger:       slog.Default(),
		preprocessor: &pipeline.LineNormalizer{},
		stripper:     &pipeline.RegexpTagStripper{},
		formatter:    &pipeline.EnvelopeFormatter{},
	}

	for _, opt := range opts {
		opt(c)
	}

	policy, err := pipeline.ParseCodeBlockPolicy(c.cfg.codeBlocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCodeBlocks, err)
	}

	// Create stages if not injected (e.g., by tests)
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(policy)
	}
	if c.optimizer == nil {
		extra := make([]pipeline.Substitution, len(c.cfg.abbreviations))
		for i, a := range c.cfg.abbreviations {
			extra[i] = pipeline.Substitution(a)
		}
		c.optimizer = pipeline.NewTableOptimizer(extra...)
	}

	return c, nil
}

// Convert runs the in-memory pipeline: markup stripping, speech optimization,
// and output formatting. An unknown input.Format is not an error: the text is
// returned as plain and a warning is logged.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Render, then strip every tag
	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMarkupConversion, err)
	}
	plain := c.stripper.StripTags(htmlContent)

	speech := c.optimizer.Optimize(plain)

	format := input.Format
	if format == "" {
		format = FormatPlain
	}
	text, known := c.formatter.Format(speech, string(format))
	if !known {
		c.logger.Warn("unsupported output format, defaulting to plain text", "format", string(format))
		format = FormatPlain
	}

	return &ConvertResult{
		HTML:   htmlContent,
		Plain:  plain,
		Speech: speech,
		Text:   text,
		Format: format,
	}, nil
}

// ConvertFile loads inputPath, converts it, and writes the result to outputPath.
// Success is logged at info level ("converted"), failure at error level
// ("conversion failed") before the error is returned.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string, format Format) (*FileResult, error) {
	res, err := c.convertFile(ctx, inputPath, outputPath, format)
	if err != nil {
		c.logger.Error("conversion failed", "input", inputPath, "error", err)
		return nil, err
	}

	attrs := []any{"input", inputPath, "output", outputPath}
	if res.Unchanged {
		attrs = append(attrs, "unchanged", true)
	}
	c.logger.Info("converted", attrs...)
	return res, nil
}

func (c *Converter) convertFile(ctx context.Context, inputPath, outputPath string, format Format) (*FileResult, error) {
	markdown, err := LoadDocument(inputPath)
	if err != nil {
		return nil, err
	}

	result, err := c.Convert(ctx, Input{Markdown: markdown, Format: format})
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res, err := WriteOutput(outputPath, result.Text)
	if err != nil {
		return nil, err
	}
	res.InputPath = inputPath

	if c.cfg.debugHTML {
		htmlPath := outputPath + ".html"
		if _, err := WriteOutput(htmlPath, result.HTML); err != nil {
			return nil, err
		}
		res.HTMLPath = htmlPath
		c.logger.Debug("wrote intermediate HTML", "path", htmlPath)
	}

	return &res, nil
}
