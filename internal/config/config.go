package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2speech/internal/decode"
	"github.com/alnah/go-md2speech/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-md2speech"

// Field length limits.
const (
	MaxPathLength         = 4096 // PATH_MAX on Linux
	MaxAbbreviationLength = 100  // one abbreviation or its expansion
	MaxAbbreviations      = 500
)

// Accepted values, empty meaning "use the default".
var (
	validFormats     = []string{"plain", "ssml"}
	validCodeBlocks  = []string{"read", "skip", "announce"}
	validLogLevels   = []string{"debug", "info", "warn", "error"}
	validLogFormats  = []string{"auto", "text", "json"}
	configExtensions = []string{".yaml", ".yml", ".toml"}
)

// Config holds all configuration for speech conversion.
type Config struct {
	Input   InputConfig   `yaml:"input" toml:"input"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Speech  SpeechConfig  `yaml:"speech" toml:"speech"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default output directory (empty = same as source)
	Format     string `yaml:"format" toml:"format"`         // "plain" or "ssml"
}

// SpeechConfig defines text rewriting options.
type SpeechConfig struct {
	CodeBlocks    string         `yaml:"codeBlocks" toml:"codeBlocks"` // "read", "skip", "announce"
	Abbreviations []Abbreviation `yaml:"abbreviations" toml:"abbreviations"`
}

// Abbreviation is an extra literal replacement applied after the built-in table.
type Abbreviation struct {
	From string `yaml:"from" toml:"from"`
	To   string `yaml:"to" toml:"to"`
}

// LoggingConfig defines log output options.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" toml:"format"` // "auto", "text", "json"
}

// Validate checks enumerated values and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateChoice("output.format", c.Output.Format, validFormats); err != nil {
		return err
	}
	if err := validateChoice("speech.codeBlocks", c.Speech.CodeBlocks, validCodeBlocks); err != nil {
		return err
	}
	if err := validateChoice("logging.level", c.Logging.Level, validLogLevels); err != nil {
		return err
	}
	if err := validateChoice("logging.format", c.Logging.Format, validLogFormats); err != nil {
		return err
	}

	if len(c.Speech.Abbreviations) > MaxAbbreviations {
		return fmt.Errorf("%w: speech.abbreviations (%d entries, max %d)", ErrFieldTooLong, len(c.Speech.Abbreviations), MaxAbbreviations)
	}
	for i, a := range c.Speech.Abbreviations {
		if a.From == "" {
			return fmt.Errorf("%w: speech.abbreviations[%d].from: required", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("speech.abbreviations[%d].from", i), a.From, MaxAbbreviationLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("speech.abbreviations[%d].to", i), a.To, MaxAbbreviationLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateChoice accepts an empty value or one of choices, case-insensitively.
func validateChoice(fieldName, value string, choices []string) error {
	if value == "" {
		return nil
	}
	for _, c := range choices {
		if strings.EqualFold(value, c) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(choices, ", "))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:   InputConfig{DefaultDir: ""},
		Output:  OutputConfig{DefaultDir: "", Format: "plain"},
		Speech:  SpeechConfig{CodeBlocks: "read"},
		Logging: LoggingConfig{Level: "info", Format: "auto"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Values missing from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode.Strict(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in lookup order.
// Extensions: .yaml, .yml, .toml. Locations: current directory, then
// <UserConfigDir>/go-md2speech/.
func SearchPaths(name string) []string {
	paths := make([]string, 0, len(configExtensions)*2) // 2 locations
	for _, ext := range configExtensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
