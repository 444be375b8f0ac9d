package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2speech/internal/config"
)

// envPrefix marks variables read by md2speech.
const envPrefix = "MD2SPEECH_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string // MD2SPEECH_CONFIG: config file name or path
	Format     string // MD2SPEECH_FORMAT: plain, ssml
	InputDir   string // MD2SPEECH_INPUT_DIR: default input directory
	OutputDir  string // MD2SPEECH_OUTPUT_DIR: default output directory
	CodeBlocks string // MD2SPEECH_CODE_BLOCKS: read, skip, announce
	Workers    int    // MD2SPEECH_WORKERS: parallel workers
	LogLevel   string // MD2SPEECH_LOG_LEVEL: debug, info, warn, error
	LogFormat  string // MD2SPEECH_LOG_FORMAT: auto, text, json
}

// knownEnvVars lists valid MD2SPEECH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SPEECH_CONFIG":      true,
	"MD2SPEECH_FORMAT":      true,
	"MD2SPEECH_INPUT_DIR":   true,
	"MD2SPEECH_OUTPUT_DIR":  true,
	"MD2SPEECH_CODE_BLOCKS": true,
	"MD2SPEECH_WORKERS":     true,
	"MD2SPEECH_LOG_LEVEL":   true,
	"MD2SPEECH_LOG_FORMAT":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2SPEECH_CONFIG"),
		Format:     os.Getenv("MD2SPEECH_FORMAT"),
		InputDir:   os.Getenv("MD2SPEECH_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2SPEECH_OUTPUT_DIR"),
		CodeBlocks: os.Getenv("MD2SPEECH_CODE_BLOCKS"),
		LogLevel:   os.Getenv("MD2SPEECH_LOG_LEVEL"),
		LogFormat:  os.Getenv("MD2SPEECH_LOG_FORMAT"),
	}

	// Invalid or non-positive worker counts are ignored
	if workers := os.Getenv("MD2SPEECH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MD2SPEECH_* variables.
// Helps catch typos like MD2SPEECH_FROMAT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Resulting priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.CodeBlocks != "" {
		cfg.Speech.CodeBlocks = env.CodeBlocks
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Logging.Format = env.LogFormat
	}
}
