package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	md2speech "github.com/alnah/go-md2speech"
	"github.com/alnah/go-md2speech/internal/config"
	"github.com/alnah/go-md2speech/internal/fileutil"
	"github.com/alnah/go-md2speech/internal/hints"
	"github.com/alnah/go-md2speech/internal/logging"
)

// ErrNoInput is returned when neither an argument nor input.defaultDir names the input.
var ErrNoInput = errors.New("no input specified")

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positionalArgs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(positionalArgs))
	}

	// Validate flags that have no config counterpart early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.speech.format != "" {
		if _, err := md2speech.ParseFormat(flags.speech.format); err != nil {
			return err
		}
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadSettings(flags.common.config, envCfg.ConfigPath, env.Config)
	if err != nil {
		return err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := logging.Setup(env.Stderr, resolveLogLevel(flags, cfg), cfg.Logging.Format)
	if err != nil {
		return err
	}

	format, err := md2speech.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, flags.output, cfg.Output.DefaultDir, format)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	poolSize := resolvePoolSize(flags.workers, envCfg.Workers)
	logger.Debug("starting conversion",
		"input", inputPath,
		"files", len(files),
		"format", string(format),
		"workers", poolSize,
		"gomaxprocs", runtime.GOMAXPROCS(0))

	pool, err := env.NewPool(poolSize, buildConverterOptions(cfg, flags, logger)...)
	if err != nil {
		return err
	}
	defer pool.Close()

	results := convertBatch(ctx, pool, files, format)
	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	return resultsError(results)
}

// loadSettings loads the config named by the flag, else by MD2SPEECH_CONFIG,
// else copies base.
func loadSettings(flagName, envName string, base *config.Config) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}

	if name == "" {
		if base == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *base
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			searched := []string{name}
			if !fileutil.IsFilePath(name) {
				searched = config.SearchPaths(name)
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searched))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.speech.format != "" {
		cfg.Output.Format = flags.speech.format
	}
	if flags.speech.codeBlocks != "" {
		cfg.Speech.CodeBlocks = flags.speech.codeBlocks
	}
	if flags.log.format != "" {
		cfg.Logging.Format = flags.log.format
	}
}

// resolveLogLevel lets --verbose and --quiet override the configured level.
func resolveLogLevel(flags *convertFlags, cfg *config.Config) string {
	switch {
	case flags.common.verbose:
		return "debug"
	case flags.common.quiet:
		return "error"
	default:
		return cfg.Logging.Level
	}
}

// buildConverterOptions translates settings into converter options.
func buildConverterOptions(cfg *config.Config, flags *convertFlags, logger *slog.Logger) []md2speech.Option {
	opts := []md2speech.Option{
		md2speech.WithLogger(logger),
		md2speech.WithCodeBlocks(cfg.Speech.CodeBlocks),
		md2speech.WithDebugHTML(flags.html),
	}

	if len(cfg.Speech.Abbreviations) > 0 {
		abbrs := make([]md2speech.Abbreviation, len(cfg.Speech.Abbreviations))
		for i, a := range cfg.Speech.Abbreviations {
			abbrs[i] = md2speech.Abbreviation{From: a.From, To: a.To}
		}
		opts = append(opts, md2speech.WithAbbreviations(abbrs...))
	}

	return opts
}

// resolveInputPath returns the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}
