// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "go-md2speech/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForInvalidUTF8 returns hints for input files that are not UTF-8.
func ForInvalidUTF8() string {
	return format("convert the file first, e.g. iconv -f LATIN1 -t UTF-8 in.md > out.md")
}

// ForCompressedInput returns hints for unreadable .xz inputs.
func ForCompressedInput() string {
	return format("only xz streams are supported; check the file with xz -t")
}

// ForChoice returns a hint listing the accepted values of a flag or setting.
func ForChoice(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// toSlash normalizes Windows separators for substring checks.
func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
