// Package decode wraps YAML and TOML parsing to isolate the external dependencies.
// Both decoders are strict: keys that do not map to a struct field are errors.
package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("decode: nil or empty data")
	ErrNilDestination = errors.New("decode: nil destination pointer")
	ErrInputTooLarge  = errors.New("decode: input exceeds maximum size")
	ErrUnknownKeys    = errors.New("decode: unknown keys")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// YAMLStrict rejects unknown fields in the input.
func YAMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// TOMLStrict rejects keys that were not decoded into v.
func TOMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	return nil
}

// Strict picks the decoder from the file extension: .toml uses TOML,
// anything else is YAML.
func Strict(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOMLStrict(data, v)
	}
	return YAMLStrict(data, v)
}
